package cli

import (
	"fmt"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/631086083/tairclient/command"
)

func expireFlags() []cli.Flag {
	return []cli.Flag{
		&cli.Int64Flag{Name: "ex", Usage: "expire after this many seconds"},
		&cli.Int64Flag{Name: "exat", Usage: "expire at this unix time in seconds"},
		&cli.Int64Flag{Name: "px", Usage: "expire after this many milliseconds"},
		&cli.Int64Flag{Name: "pxat", Usage: "expire at this unix time in milliseconds"},
	}
}

func existsFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{Name: "nx", Usage: "only write a field that does not exist"},
		&cli.BoolFlag{Name: "xx", Usage: "only write a field that exists"},
	}
}

func versionFlags() []cli.Flag {
	return []cli.Flag{
		&cli.Int64Flag{Name: "ver", Usage: "fail unless the field has this version"},
		&cli.Int64Flag{Name: "abs", Usage: "set the version to this value"},
	}
}

func noActiveFlag() cli.Flag {
	return &cli.BoolFlag{Name: "noactive", Usage: "do not evict the field actively when it expires"}
}

func boundFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "min", Usage: "lower bound of the result"},
		&cli.StringFlag{Name: "max", Usage: "upper bound of the result"},
	}
}

func scanFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "match", Usage: "only return fields matching this glob"},
		&cli.Int64Flag{Name: "count", Usage: "hint for the number of fields per step"},
	}
}

func flags(groups ...[]cli.Flag) []cli.Flag {
	var all []cli.Flag
	for _, group := range groups {
		all = append(all, group...)
	}

	return all
}

// options converts the modifier flags present on the command into
// command options. Bounds are parsed as floats when float is set and as
// integers otherwise.
func options(c *cli.Context, float bool) ([]command.Option, error) {
	var opts []command.Option

	for name, option := range map[string]func(command.Expiry) command.Option{
		"ex":   command.EX,
		"exat": command.EXAT,
		"px":   command.PX,
		"pxat": command.PXAT,
	} {
		if c.IsSet(name) {
			opts = append(opts, option(command.Raw(c.Int64(name))))
		}
	}

	if c.Bool("nx") {
		opts = append(opts, command.NX())
	}

	if c.Bool("xx") {
		opts = append(opts, command.XX())
	}

	if c.IsSet("ver") {
		opts = append(opts, command.Ver(c.Int64("ver")))
	}

	if c.IsSet("abs") {
		opts = append(opts, command.Abs(c.Int64("abs")))
	}

	if c.Bool("noactive") {
		opts = append(opts, command.NoActive())
	}

	for name, bound := range map[string]struct {
		integer func(int64) command.Option
		float   func(float64) command.Option
	}{
		"min": {command.Min, command.MinFloat},
		"max": {command.Max, command.MaxFloat},
	} {
		if !c.IsSet(name) {
			continue
		}

		option, err := parseBound(c.String(name), float, bound.integer, bound.float)
		if err != nil {
			return nil, fmt.Errorf("--%s: %w", name, err)
		}

		opts = append(opts, option)
	}

	if c.IsSet("match") {
		opts = append(opts, command.Match(c.String("match")))
	}

	if c.IsSet("count") {
		opts = append(opts, command.Count(c.Int64("count")))
	}

	return opts, nil
}

func parseBound(value string, float bool, integer func(int64) command.Option, floating func(float64) command.Option) (command.Option, error) {
	if float {
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, err
		}

		return floating(f), nil
	}

	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return nil, err
	}

	return integer(n), nil
}
