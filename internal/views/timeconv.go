package views

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"devtoolbox_echo/internal/tools"
)

type timeView struct {
	deps Deps
}

func newTimeView(deps Deps) (View, error) {
	if deps.Timezone == nil {
		deps.Timezone = time.UTC
	}
	return &timeView{deps: deps}, nil
}

func (v *timeView) Key() string { return KeyTimeConverter }

func (v *timeView) Form() Form {
	return Form{
		Fields: []Field{
			{Name: "input", Label: "Timestamp or date", Kind: FieldText, Placeholder: "1700000000 or 2024-01-02 15:04:05"},
			{Name: "zone", Label: "Time zone", Kind: FieldText, Default: v.deps.Timezone.String()},
			{Name: "rrule", Label: "RRULE", Kind: FieldText, Placeholder: "FREQ=WEEKLY;BYDAY=MO,WE"},
			{Name: "count", Label: "Occurrences", Kind: FieldNumber, Default: "10"},
		},
		Actions: []Option{
			{Value: "convert", Label: "Convert"},
			{Value: "now", Label: "Now"},
			{Value: "rrule", Label: "Expand RRULE"},
		},
	}
}

func (v *timeView) Submit(_ context.Context, in Input) (Output, error) {
	loc := v.deps.Timezone
	if zone := strings.TrimSpace(in.Value("zone")); zone != "" {
		var err error
		if loc, err = tools.LoadZone(zone); err != nil {
			return Output{}, err
		}
	}
	now := v.deps.now()

	switch in.Action {
	case "", "convert":
		t, err := tools.ParseTime(in.Value("input"), loc)
		if err != nil {
			return Output{}, err
		}
		return conversionOutput("Time converted", tools.ConvertTime(t, loc, now)), nil

	case "now":
		return conversionOutput("Current time", tools.ConvertTime(now, loc, now)), nil

	case "rrule":
		count, err := in.Int("count", 10)
		if err != nil {
			return Output{}, err
		}
		start := now
		if strings.TrimSpace(in.Value("input")) != "" {
			if start, err = tools.ParseTime(in.Value("input"), loc); err != nil {
				return Output{}, err
			}
		}
		occurrences, err := tools.Occurrences(in.Value("rrule"), start.In(loc), start.Add(-time.Second), count)
		if err != nil {
			return Output{}, err
		}
		lines := make([]string, len(occurrences))
		pairs := make([]Pair, len(occurrences))
		for i, o := range occurrences {
			local := o.In(loc)
			lines[i] = local.Format(time.RFC3339)
			pairs[i] = Pair{Key: strconv.Itoa(i + 1), Value: local.Format("2006-01-02 15:04:05 Mon")}
		}
		return Output{
			Message: fmt.Sprintf("%d occurrences", len(occurrences)),
			Text:    strings.Join(lines, "\n"),
			Pairs:   pairs,
			Data:    lines,
		}, nil

	default:
		return Output{}, unknownAction(v.Key(), in.Action)
	}
}

func conversionOutput(message string, c tools.TimeConversion) Output {
	return Output{
		Message: message,
		Pairs: []Pair{
			{Key: "Unix (s)", Value: strconv.FormatInt(c.Unix, 10)},
			{Key: "Unix (ms)", Value: strconv.FormatInt(c.UnixMilli, 10)},
			{Key: "RFC 3339", Value: c.RFC3339},
			{Key: "Local", Value: c.Local},
			{Key: "UTC", Value: c.UTC},
			{Key: "Weekday", Value: c.Weekday},
			{Key: "Zone", Value: c.Zone},
			{Key: "Relative", Value: c.Relative},
		},
		Data: c,
	}
}
