package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/levelforge/internal/render"
)

var (
	flagPreviewFrom   int
	flagPreviewWidth  int
	flagPreviewLegend bool
	flagPreviewPlain  bool
)

var previewCmd = &cobra.Command{
	Use:   "preview <id|file.yaml>",
	Short: "Draw an ASCII preview of a level",
	Long: `Draw a level as text: a header, a zone ruler, and the tile grid with
entities on top. On a terminal the preview is colored and cropped to the
terminal width; use --from to scroll.

Examples:
  levelforge preview LVLID_1_2_4_000000000000D903
  levelforge preview level.yaml --from 80 --legend
  levelforge preview LVLID_1_0_0_0000000000000001 --plain --width 0 > level.txt`,
	Args: cobra.ExactArgs(1),
	Run:  runPreview,
}

func init() {
	previewCmd.Flags().IntVar(&flagPreviewFrom, "from", 0, "First column to draw")
	previewCmd.Flags().IntVar(&flagPreviewWidth, "width", -1, "Columns to draw (0 = all, default: terminal width)")
	previewCmd.Flags().BoolVar(&flagPreviewLegend, "legend", false, "Print the glyph legend")
	previewCmd.Flags().BoolVar(&flagPreviewPlain, "plain", false, "Disable colors")
}

func runPreview(_ *cobra.Command, args []string) {
	lv, err := loadLevel(args[0])
	if err != nil {
		fail("%v", err)
	}

	fd := int(os.Stdout.Fd())
	isTerm := term.IsTerminal(fd)

	opts := render.Options{From: flagPreviewFrom, Width: flagPreviewWidth, Legend: flagPreviewLegend}
	if opts.Width < 0 {
		opts.Width = 0
		if isTerm {
			if w, _, termErr := term.GetSize(fd); termErr == nil {
				opts.Width = w
			}
		}
	}

	if isTerm && !flagPreviewPlain {
		fmt.Println(render.Styled(lv, opts, render.DefaultTheme()))
		return
	}
	fmt.Println(render.Plain(lv, opts))
}
