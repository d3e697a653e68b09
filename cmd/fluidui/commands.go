package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-fluidui"
	"github.com/goliatone/go-fluidui/internal/config"
	"github.com/goliatone/go-fluidui/pkg/component"
	"github.com/goliatone/go-fluidui/pkg/components"
	"github.com/goliatone/go-fluidui/pkg/dom"
	"github.com/goliatone/go-fluidui/pkg/fileio"
	"github.com/goliatone/go-fluidui/pkg/generator"
	"github.com/goliatone/go-fluidui/pkg/shell"
	"github.com/goliatone/go-fluidui/pkg/widget"
)

const defaultDescriptor = "App.vue"

func (c *cli) loadConfig() (*config.Config, error) {
	if c.config == "" {
		return config.Default(), nil
	}
	return config.Load(c.config)
}

func descriptorPath(cfg *config.Config, flag string) string {
	if flag != "" {
		return flag
	}
	return filepath.Join(cfg.DescriptorDir, defaultDescriptor)
}

// compose loads the descriptor into a fresh session and picks the configured
// generator. Component styles travel with the session graph.
func (c *cli) compose(cfg *config.Config, path string) (*widget.Session, generator.Generator, error) {
	comp, err := component.NewFromFile(path, component.WithLogger(c.logger))
	if err != nil {
		return nil, nil, err
	}
	session := widget.NewSession(widget.WithLogger(c.logger))
	if _, err := session.AddComponent(session.Root(), comp); err != nil {
		return nil, nil, err
	}

	opts := []generator.Option{
		generator.WithTitle(cfg.Title),
		generator.WithStyles(cfg.Styles...),
		generator.WithLogger(c.logger),
	}
	if cfg.Template != "" {
		opts = append(opts,
			generator.WithTemplateDir(filepath.Dir(cfg.Template)),
			generator.WithTemplateName(filepath.Base(cfg.Template)),
		)
	}
	registry, err := generator.NewBuiltinRegistry(opts...)
	if err != nil {
		return nil, nil, err
	}
	gen, err := registry.Get(cfg.Generator)
	if err != nil {
		return nil, nil, err
	}
	return session, gen, nil
}

func (c *cli) renderCmd() *cobra.Command {
	var descriptor, out string
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a component descriptor to an HTML page",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			session, gen, err := c.compose(cfg, descriptorPath(cfg, descriptor))
			if err != nil {
				return err
			}
			page, err := gen.GenerateHTML(session.Graph())
			if err != nil {
				return err
			}
			target := out
			if target == "" {
				target = cfg.Output
			}
			if target == "-" {
				fmt.Fprint(c.out, page)
				return nil
			}
			if err := fileio.Default.WriteToFile(target, page); err != nil {
				return err
			}
			fmt.Fprintf(c.out, "page written to %s\n", target)
			return nil
		},
	}
	cmd.Flags().StringVar(&descriptor, "component", "", "component descriptor (default <descriptor_dir>/App.vue)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file, - for stdout (default from config)")
	return cmd
}

func (c *cli) inspectCmd() *cobra.Command {
	var tag, attr, match string
	var title, caseSensitive bool
	cmd := &cobra.Command{
		Use:   "inspect <file.html>",
		Short: "Query elements of an HTML document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := dom.ParseFile(args[0], dom.WithLogger(c.logger))
			if err != nil {
				return err
			}
			defer doc.Close()

			if title {
				fmt.Fprintf(c.out, "title: %s\n", doc.Title())
			}
			if tag != "" {
				if err := doc.WithElementsByTagName(tag, c.printCollection); err != nil {
					return err
				}
			}
			if attr != "" {
				name, value, _ := strings.Cut(attr, "=")
				matchType, err := dom.ParseMatchType(match)
				if err != nil {
					return err
				}
				if err := doc.WithElementsByAttribute(name, value, matchType, c.printCollection, dom.IgnoreCase(!caseSensitive)); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&tag, "tag", "", "list elements with this tag name")
	cmd.Flags().StringVar(&attr, "attr", "", "list elements whose attribute matches, as name=value")
	cmd.Flags().StringVar(&match, "match", "equals", "equals, contains, starts-with or ends-with")
	cmd.Flags().BoolVar(&caseSensitive, "case-sensitive", false, "compare attribute values exactly")
	cmd.Flags().BoolVar(&title, "title", false, "print the document title")
	return cmd
}

func (c *cli) printCollection(col *dom.Collection) error {
	fmt.Fprintf(c.out, "%d element(s)\n", col.Len())
	for _, n := range col.Elements() {
		text, err := dom.SerializeNode(n)
		if err != nil {
			return err
		}
		fmt.Fprint(c.out, text)
	}
	return nil
}

func (c *cli) prepareCmd() *cobra.Command {
	var title, out string
	cmd := &cobra.Command{
		Use:   "prepare <index.html>",
		Short: "Write a host page with the app root and title set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := components.NewApp(args[0], component.WithLogger(c.logger))
			if err != nil {
				return err
			}
			if title != "" {
				app.SetTitle(title)
			}
			if err := app.Prepare(out); err != nil {
				return err
			}
			fmt.Fprintf(c.out, "host page written to %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "document title (default the page name)")
	cmd.Flags().StringVarP(&out, "out", "o", components.DefaultPreparedPath, "output file")
	return cmd
}

func (c *cli) previewCmd() *cobra.Command {
	var descriptor, addr string
	var watch, openBrowser bool
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Serve the rendered page in a browser",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Preview.Addr
			}
			if !cmd.Flags().Changed("open") {
				openBrowser = cfg.Preview.OpenBrowser
			}
			path := descriptorPath(cfg, descriptor)
			session, gen, err := c.compose(cfg, path)
			if err != nil {
				return err
			}
			ui, err := fluidui.New(cfg.Title, gen,
				fluidui.WithSize(cfg.Width, cfg.Height),
				fluidui.WithSession(session),
				fluidui.WithLogger(c.logger),
				fluidui.WithShell(shell.PreviewFactory, shell.WithAddr(addr), shell.WithOpenBrowser(openBrowser)),
			)
			if err != nil {
				return err
			}
			defer ui.Close()
			if err := ui.Generate(); err != nil {
				c.logger.Warn("preview: initial page has errors", "error", err)
			}

			ctx := cmd.Context()
			if watch {
				reload := func() {
					session, gen, err := c.compose(cfg, path)
					if err != nil {
						c.logger.Error("preview: reload", "path", path, "error", err)
						return
					}
					page, _ := gen.GenerateHTML(session.Graph())
					ui.Shell().SetHTML(page)
					c.logger.Info("preview: reloaded", "path", path)
				}
				if err := watchFile(ctx, path, reload, c.logger.Warn); err != nil {
					return err
				}
			}
			fmt.Fprintf(c.out, "serving %s on http://%s/\n", path, addr)
			return ui.Run(ctx)
		},
	}
	cmd.Flags().StringVar(&descriptor, "component", "", "component descriptor (default <descriptor_dir>/App.vue)")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	cmd.Flags().BoolVar(&openBrowser, "open", false, "open the page in the default browser")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "re-render when the descriptor changes")
	return cmd
}

// watchFile calls onChange whenever path is written or replaced. The parent
// directory is watched since editors often save by renaming.
func watchFile(ctx context.Context, path string, onChange func(), warn func(string, ...any)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("preview: create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return fmt.Errorf("preview: watch %s: %w", path, err)
	}
	target := filepath.Clean(path)

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
					onChange()
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				if !errors.Is(err, fsnotify.ErrEventOverflow) {
					warn("preview: watcher error", "error", err)
				}
			}
		}
	}()
	return nil
}
