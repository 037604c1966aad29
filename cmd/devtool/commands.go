package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"devtoolbox_echo/internal/config"
	"devtoolbox_echo/internal/models"
	"devtoolbox_echo/internal/router"
	"devtoolbox_echo/internal/tools"
	"devtoolbox_echo/internal/views"
)

func jsonCmd() *cobra.Command {
	var (
		file   string
		indent string
		sort   bool
	)
	cmd := &cobra.Command{
		Use:   "json",
		Short: "Format, minify, validate, query and convert JSON",
	}
	cmd.PersistentFlags().StringVarP(&file, "file", "f", "", "Read input from file")

	format := &cobra.Command{
		Use:   "format [json]",
		Short: "Pretty print JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(cmd, args, file)
			if err != nil {
				return err
			}
			out, err := tools.FormatJSON(input, tools.JSONFormatOptions{Indent: indent, SortKeys: sort})
			if err != nil {
				return err
			}
			printLine(cmd, out)
			return nil
		},
	}
	format.Flags().StringVar(&indent, "indent", "2", "Indent: 2, 4 or tab")
	format.Flags().BoolVar(&sort, "sort", false, "Sort object keys")

	minify := &cobra.Command{
		Use:   "minify [json]",
		Short: "Remove insignificant whitespace",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(cmd, args, file)
			if err != nil {
				return err
			}
			out, err := tools.MinifyJSON(input)
			if err != nil {
				return err
			}
			printLine(cmd, out)
			return nil
		},
	}

	validate := &cobra.Command{
		Use:   "validate [json]",
		Short: "Check JSON and report the error position",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(cmd, args, file)
			if err != nil {
				return err
			}
			res := tools.ValidateJSON(input)
			if err := printJSON(cmd, res); err != nil {
				return err
			}
			if !res.Valid {
				return errors.New("invalid JSON")
			}
			return nil
		},
	}

	query := &cobra.Command{
		Use:   "query <path> [json]",
		Short: "Extract a value by path, e.g. items[0].name",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(cmd, args[1:], file)
			if err != nil {
				return err
			}
			out, err := tools.QueryJSON(input, args[0])
			if err != nil {
				return err
			}
			printLine(cmd, out)
			return nil
		},
	}

	convert := &cobra.Command{
		Use:   "convert <yaml|toml> [json]",
		Short: "Convert JSON to YAML or TOML",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(cmd, args[1:], file)
			if err != nil {
				return err
			}
			out, err := tools.ConvertJSON(input, args[0])
			if err != nil {
				return err
			}
			printLine(cmd, out)
			return nil
		},
	}

	cmd.AddCommand(format, minify, validate, query, convert)
	return cmd
}

func base64Cmd() *cobra.Command {
	var (
		file    string
		variant string
	)
	cmd := &cobra.Command{
		Use:   "base64",
		Short: "Encode or decode Base64",
	}
	cmd.PersistentFlags().StringVarP(&file, "file", "f", "", "Read input from file")

	encode := &cobra.Command{
		Use:   "encode [text]",
		Short: "Encode text or a file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var data []byte
			if len(args) > 0 {
				data = []byte(args[0])
			} else {
				var err error
				if data, err = readInputBytes(cmd, file); err != nil {
					return err
				}
			}
			out, err := tools.EncodeBase64(data, variant)
			if err != nil {
				return err
			}
			printLine(cmd, out)
			return nil
		},
	}
	encode.Flags().StringVar(&variant, "variant", tools.Base64Standard, "Alphabet: std, url, rawstd or rawurl")

	var output string
	decode := &cobra.Command{
		Use:   "decode [base64]",
		Short: "Decode Base64; binary results are shown as a hex dump unless --output is set",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(cmd, args, file)
			if err != nil {
				return err
			}
			decoded, err := tools.DecodeBase64(input)
			if err != nil {
				return err
			}
			if output != "" {
				return os.WriteFile(output, decoded.Data, 0o644)
			}
			printLine(cmd, decoded.Text)
			return nil
		},
	}
	decode.Flags().StringVarP(&output, "output", "o", "", "Write decoded bytes to file")

	cmd.AddCommand(encode, decode)
	return cmd
}

func hashCmd() *cobra.Command {
	var (
		file    string
		hmacKey string
	)
	cmd := &cobra.Command{
		Use:       "hash <algorithm> [text]",
		Short:     "Hash text or a file (" + strings.Join(tools.HashAlgorithms, ", ") + ")",
		Args:      cobra.RangeArgs(1, 2),
		ValidArgs: tools.HashAlgorithms,
		RunE: func(cmd *cobra.Command, args []string) error {
			var data []byte
			if len(args) > 1 {
				data = []byte(args[1])
			} else {
				var err error
				if data, err = readInputBytes(cmd, file); err != nil {
					return err
				}
			}
			var (
				sum string
				err error
			)
			if hmacKey != "" {
				sum, err = tools.HMAC(args[0], []byte(hmacKey), data)
			} else {
				sum, err = tools.Hash(args[0], data)
			}
			if err != nil {
				return err
			}
			printLine(cmd, sum)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Read input from file")
	cmd.Flags().StringVar(&hmacKey, "hmac", "", "Compute an HMAC with this key")
	return cmd
}

func regexCmd() *cobra.Command {
	var (
		file    string
		flags   string
		replace string
	)
	cmd := &cobra.Command{
		Use:   "regex <pattern> [text]",
		Short: "Match a regular expression against text",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(cmd, args[1:], file)
			if err != nil {
				return err
			}
			var replacement *string
			if cmd.Flags().Changed("replace") {
				replacement = &replace
			}
			res, err := tools.TestRegex(args[0], flags, input, replacement)
			if err != nil {
				return err
			}
			return printJSON(cmd, res)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Read input from file")
	cmd.Flags().StringVar(&flags, "flags", "g", "Flags: g (all matches), i, m, s")
	cmd.Flags().StringVar(&replace, "replace", "", "Replacement template ($1, ${name})")
	return cmd
}

func timeCmd() *cobra.Command {
	var (
		zone  string
		rrule string
		count int
	)
	cmd := &cobra.Command{
		Use:   "time [timestamp|date]",
		Short: "Convert a timestamp or date between formats and zones",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loc, err := tools.LoadZone(zone)
			if err != nil {
				return err
			}
			now := time.Now()
			t := now
			if len(args) > 0 {
				if t, err = tools.ParseTime(args[0], loc); err != nil {
					return err
				}
			}
			if rrule == "" {
				return printJSON(cmd, tools.ConvertTime(t, loc, now))
			}

			occurrences, err := tools.Occurrences(rrule, t, t.Add(-time.Second), count)
			if err != nil {
				return err
			}
			for _, o := range occurrences {
				printLine(cmd, o.In(loc).Format(time.RFC3339))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&zone, "zone", "UTC", "IANA time zone")
	cmd.Flags().StringVar(&rrule, "rrule", "", "List occurrences of an RRULE starting at the given time")
	cmd.Flags().IntVar(&count, "count", 5, "Number of RRULE occurrences")
	return cmd
}

func diffCmd() *cobra.Command {
	var opts tools.DiffOptions
	cmd := &cobra.Command{
		Use:   "diff <original-file> <modified-file>",
		Short: "Compare two text files line by line",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			original, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			modified, err := os.ReadFile(args[1])
			if err != nil {
				return err
			}
			res, err := tools.CompareText(string(original), string(modified), opts)
			if err != nil {
				return err
			}
			if res.Identical {
				printLine(cmd, "identical")
				return nil
			}
			printLine(cmd, res.Unified)
			fmt.Fprintf(cmd.ErrOrStderr(), "%d added, %d removed, %.1f%% similar\n", res.Inserted, res.Deleted, res.Similarity*100)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&opts.IgnoreCase, "ignore-case", "i", false, "Ignore case differences")
	cmd.Flags().BoolVarP(&opts.IgnoreWhitespace, "ignore-space", "w", false, "Ignore whitespace differences")
	cmd.Flags().BoolVar(&opts.Normalize, "nfc", false, "Apply Unicode NFC normalisation first")
	cmd.Flags().IntVarP(&opts.Context, "context", "U", 3, "Lines of unified context")
	return cmd
}

func qrcodeCmd() *cobra.Command {
	var (
		level  string
		size   int
		output string
	)
	cmd := &cobra.Command{
		Use:   "qrcode <content>",
		Short: "Render a QR code in the terminal or to a PNG file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				text, err := tools.QRCodeText(args[0], level)
				if err != nil {
					return err
				}
				printLine(cmd, text)
				return nil
			}
			png, err := tools.QRCodePNG(args[0], tools.QROptions{Level: level, Size: size})
			if err != nil {
				return err
			}
			return os.WriteFile(output, png, 0o644)
		},
	}
	cmd.Flags().StringVar(&level, "level", "M", "Error correction: L, M, Q or H")
	cmd.Flags().IntVar(&size, "size", 256, "PNG size in pixels")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write a PNG instead of printing")
	return cmd
}

func imageCmd() *cobra.Command {
	var (
		output string
		opts   tools.CompressOptions
	)
	cmd := &cobra.Command{
		Use:   "image",
		Short: "Convert or compress images",
	}
	cmd.PersistentFlags().StringVarP(&output, "output", "o", "", "Output file (required)")

	write := func(cmd *cobra.Command, res tools.ImageResult) error {
		if output == "" {
			return errors.New("--output is required")
		}
		if err := os.WriteFile(output, res.Data, 0o644); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %dx%d %d bytes -> %s %dx%d %d bytes (%.0f%%)\n",
			res.Original.Format, res.Original.Width, res.Original.Height, res.Original.Bytes,
			res.Result.Format, res.Result.Width, res.Result.Height, res.Result.Bytes, res.Ratio()*100)
		return nil
	}

	var quality int
	convert := &cobra.Command{
		Use:   "convert <file> <format>",
		Short: "Convert to png, jpeg, gif, bmp or tiff",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			res, err := tools.ConvertImage(data, args[1], quality)
			if err != nil {
				return err
			}
			return write(cmd, res)
		},
	}
	convert.Flags().IntVar(&quality, "quality", 90, "JPEG quality")

	compress := &cobra.Command{
		Use:   "compress <file>",
		Short: "Re-encode smaller, optionally downscaling",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			res, err := tools.CompressImage(data, opts)
			if err != nil {
				return err
			}
			return write(cmd, res)
		},
	}
	compress.Flags().IntVar(&opts.Quality, "quality", 75, "JPEG quality")
	compress.Flags().IntVar(&opts.MaxWidth, "max-width", 0, "Downscale images wider than this")
	compress.Flags().StringVar(&opts.Format, "format", "", "Output format, defaults to the input format")

	cmd.AddCommand(convert, compress)
	return cmd
}

func routesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "List the page routes and the views behind them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			routes := router.DefaultRoutes(views.DefaultRegistry(), views.Deps{}, "")
			if _, err := router.New(routes); err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "PATH\tVIEW\tGROUP\tTITLE")
			for _, route := range routes {
				if route.Redirect != "" {
					fmt.Fprintf(w, "%s\t-> %s\t\t\n", route.Path, route.Redirect)
					continue
				}
				view, _ := router.ViewKey(route.Path)
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", route.Path, view, route.Meta.Group, route.Meta.Title)
			}
			return w.Flush()
		},
	}
}

func menuCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "menu",
		Short: "Print the navigation menu",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			menu := config.Menu()
			if err := config.ValidateMenu(menu); err != nil {
				return err
			}
			if asJSON {
				return printJSON(cmd, menu)
			}
			printMenu(cmd, menu, 0)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func printMenu(cmd *cobra.Command, items []models.MenuItem, depth int) {
	for _, item := range items {
		line := strings.Repeat("  ", depth) + item.Title
		if item.Path != "" {
			line += "  " + item.Path
		}
		printLine(cmd, line)
		printMenu(cmd, item.Children, depth+1)
	}
}
