package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jh3/codep/internal/collect"
	"github.com/jh3/codep/internal/render"
	"github.com/jh3/codep/internal/source"
)

// listOptions are the flags shared by every listing command.
type listOptions struct {
	withFiles   bool
	withDirs    bool
	withRemotes bool
	all         bool
	order       string
	limit       int
	maxAgeDays  uint
	display     bool
	markup      string
}

func (o *listOptions) addFlags(cmd *cobra.Command, withAge bool) {
	flags := cmd.Flags()
	flags.BoolVarP(&o.withFiles, "with-files", "w", false, "include local files")
	flags.BoolVarP(&o.withDirs, "with-dirs", "W", false, "include local folders")
	flags.BoolVarP(&o.withRemotes, "with-remotes", "r", false, "include remote folders")
	flags.BoolVarP(&o.all, "all", "a", false, "include files, folders and remotes")
	flags.StringVarP(&o.order, "order", "d", "unchanged", "kind ordering: unchanged, files-first or dirs-first")
	flags.IntVarP(&o.limit, "limit", "l", 0, "print at most this many entries (0 for no limit)")
	flags.BoolVarP(&o.display, "display", "D", false, "append a tab and a human readable display string")
	flags.StringVarP(&o.markup, "markup", "m", "none", "markup around the remote type hint: none, pango or ansi")
	if withAge {
		flags.UintVarP(&o.maxAgeDays, "max-age-days", "M", 0, "skip entries not modified within this many days")
	}
}

func (o *listOptions) selection(defaults collect.Selection) collect.Selection {
	if o.all {
		return collect.Selection{Files: true, Dirs: true, Remotes: true}
	}
	sel := collect.Selection{Files: o.withFiles, Dirs: o.withDirs, Remotes: o.withRemotes}
	if !sel.Any() {
		return defaults
	}
	return sel
}

// runList collects the entries of src and prints them to the command output.
func (a *app) runList(cmd *cobra.Command, src source.Source, o *listOptions, defaults collect.Selection) error {
	flags := cmd.Flags()
	cfg := a.cfg

	orderName := o.order
	if !flags.Changed("order") && cfg.Order != "" {
		orderName = cfg.Order
	}
	order, err := collect.ParseOrder(orderName)
	if err != nil {
		return err
	}

	markupName := o.markup
	if !flags.Changed("markup") && cfg.Markup != "" {
		markupName = cfg.Markup
	}
	markup, err := render.ParseMarkup(markupName)
	if err != nil {
		return err
	}

	opts := collect.Options{
		Select: o.selection(defaults),
		Limit:  o.limit,
		Order:  order,
	}
	if !flags.Changed("limit") {
		opts.Limit = cfg.Limit
	}
	if opts.Limit < 0 {
		return fmt.Errorf("invalid limit %d (want 0 for no limit or a positive count)", opts.Limit)
	}
	if flags.Lookup("max-age-days") != nil {
		if flags.Changed("max-age-days") {
			days := o.maxAgeDays
			opts.MaxAgeDays = &days
		} else {
			opts.MaxAgeDays = cfg.MaxAgeDays
		}
	}

	display := o.display
	if !flags.Changed("display") {
		display = cfg.Display
	}

	entries, err := collect.Collect(src, opts)
	if err != nil {
		return err
	}
	w := render.NewWriter(cmd.OutOrStdout(), render.Options{
		Display:        display,
		Markup:         markup,
		NullTerminated: a.nullTerminated,
	})
	return w.WriteAll(entries)
}
