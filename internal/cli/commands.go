package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/631086083/tairclient/command"
	"github.com/631086083/tairclient/exhash"
)

const nilOutput = "(nil)"

func commands(connect Connector) []*cli.Command {
	return []*cli.Command{
		{
			Name:      "set",
			Usage:     "Set the value of a field",
			ArgsUsage: "KEY FIELD VALUE",
			Flags:     flags(expireFlags(), existsFlags(), versionFlags(), []cli.Flag{noActiveFlag()}),
			Action: action(connect, 3, false, func(c *cli.Context, client *exhash.Client) error {
				opts, err := options(c, false)
				if err != nil {
					return err
				}

				n, err := client.ExHSet(c.Args().Get(0), c.Args().Get(1), c.Args().Get(2), opts...)
				return printValue(c, n, err)
			}),
		},
		{
			Name:      "get",
			Usage:     "Get the value of a field",
			ArgsUsage: "KEY FIELD",
			Flags: []cli.Flag{
				&cli.BoolFlag{Name: "with-ver", Usage: "also print the version"},
			},
			Action: action(connect, 2, false, func(c *cli.Context, client *exhash.Client) error {
				if c.Bool("with-ver") {
					v, err := client.ExHGetWithVer(c.Args().Get(0), c.Args().Get(1))
					if err == exhash.ErrNil {
						return printLine(c, nilOutput)
					}
					if err != nil {
						return err
					}

					return printLine(c, fmt.Sprintf("%s (version %d)", v.Value, v.Version))
				}

				value, err := client.ExHGet(c.Args().Get(0), c.Args().Get(1))
				return printBytes(c, value, err)
			}),
		},
		{
			Name:      "mget",
			Usage:     "Get the values of several fields",
			ArgsUsage: "KEY FIELD [FIELD...]",
			Action: action(connect, 2, true, func(c *cli.Context, client *exhash.Client) error {
				values, err := client.ExHMGet(c.Args().First(), c.Args().Tail()...)
				if err != nil {
					return err
				}

				return printList(c, values)
			}),
		},
		{
			Name:      "mset",
			Usage:     "Set several fields",
			ArgsUsage: "KEY FIELD VALUE [FIELD VALUE...]",
			Action: action(connect, 3, true, func(c *cli.Context, client *exhash.Client) error {
				pairs := c.Args().Tail()
				if len(pairs)%2 != 0 {
					return fmt.Errorf("%s: %w", c.Command.Name, errUsage)
				}

				fields := map[string]interface{}{}
				for i := 0; i < len(pairs); i += 2 {
					fields[pairs[i]] = pairs[i+1]
				}

				if err := client.ExHMSet(c.Args().First(), fields); err != nil {
					return err
				}

				return printLine(c, "OK")
			}),
		},
		{
			Name:      "del",
			Usage:     "Delete fields",
			ArgsUsage: "KEY FIELD [FIELD...]",
			Action: action(connect, 2, true, func(c *cli.Context, client *exhash.Client) error {
				n, err := client.ExHDel(c.Args().First(), c.Args().Tail()...)
				return printValue(c, n, err)
			}),
		},
		{
			Name:      "len",
			Usage:     "Count the fields of a hash",
			ArgsUsage: "KEY",
			Flags: []cli.Flag{
				&cli.BoolFlag{Name: "noexp", Usage: "exclude expired fields that were not evicted yet"},
			},
			Action: action(connect, 1, false, func(c *cli.Context, client *exhash.Client) error {
				n, err := client.ExHLen(c.Args().First(), c.Bool("noexp"))
				return printValue(c, n, err)
			}),
		},
		{
			Name:      "exists",
			Usage:     "Check whether a field exists",
			ArgsUsage: "KEY FIELD",
			Action: action(connect, 2, false, func(c *cli.Context, client *exhash.Client) error {
				ok, err := client.ExHExists(c.Args().Get(0), c.Args().Get(1))
				return printValue(c, ok, err)
			}),
		},
		{
			Name:      "ver",
			Usage:     "Print the version of a field",
			ArgsUsage: "KEY FIELD",
			Action: action(connect, 2, false, func(c *cli.Context, client *exhash.Client) error {
				n, err := client.ExHVer(c.Args().Get(0), c.Args().Get(1))
				return printValue(c, n, err)
			}),
		},
		{
			Name:      "setver",
			Usage:     "Overwrite the version of a field",
			ArgsUsage: "KEY FIELD VERSION",
			Action: action(connect, 3, false, func(c *cli.Context, client *exhash.Client) error {
				version, err := strconv.ParseInt(c.Args().Get(2), 10, 64)
				if err != nil {
					return fmt.Errorf("version: %w", err)
				}

				ok, err := client.ExHSetVer(c.Args().Get(0), c.Args().Get(1), version)
				return printValue(c, ok, err)
			}),
		},
		{
			Name:      "incrby",
			Usage:     "Add an integer to a field",
			ArgsUsage: "KEY FIELD DELTA",
			Flags:     flags(expireFlags(), existsFlags(), versionFlags(), boundFlags()),
			Action: action(connect, 3, false, func(c *cli.Context, client *exhash.Client) error {
				delta, err := strconv.ParseInt(c.Args().Get(2), 10, 64)
				if err != nil {
					return fmt.Errorf("delta: %w", err)
				}

				opts, err := options(c, false)
				if err != nil {
					return err
				}

				n, err := client.ExHIncrBy(c.Args().Get(0), c.Args().Get(1), delta, opts...)
				return printValue(c, n, err)
			}),
		},
		{
			Name:      "incrbyfloat",
			Usage:     "Add a float to a field",
			ArgsUsage: "KEY FIELD DELTA",
			Flags:     flags(expireFlags(), existsFlags(), versionFlags(), boundFlags()),
			Action: action(connect, 3, false, func(c *cli.Context, client *exhash.Client) error {
				delta, err := strconv.ParseFloat(c.Args().Get(2), 64)
				if err != nil {
					return fmt.Errorf("delta: %w", err)
				}

				opts, err := options(c, true)
				if err != nil {
					return err
				}

				f, err := client.ExHIncrByFloat(c.Args().Get(0), c.Args().Get(1), delta, opts...)
				return printValue(c, strconv.FormatFloat(f, 'f', -1, 64), err)
			}),
		},
		{
			Name:      "ttl",
			Usage:     "Print the time to live of a field in seconds",
			ArgsUsage: "KEY FIELD",
			Action: action(connect, 2, false, func(c *cli.Context, client *exhash.Client) error {
				n, err := client.ExHTTL(c.Args().Get(0), c.Args().Get(1))
				return printValue(c, n, err)
			}),
		},
		{
			Name:      "pttl",
			Usage:     "Print the time to live of a field in milliseconds",
			ArgsUsage: "KEY FIELD",
			Action: action(connect, 2, false, func(c *cli.Context, client *exhash.Client) error {
				n, err := client.ExHPTTL(c.Args().Get(0), c.Args().Get(1))
				return printValue(c, n, err)
			}),
		},
		{
			Name:      "expire",
			Usage:     "Expire a field after a number of seconds",
			ArgsUsage: "KEY FIELD SECONDS",
			Flags:     flags(versionFlags(), []cli.Flag{noActiveFlag()}),
			Action: action(connect, 3, false, func(c *cli.Context, client *exhash.Client) error {
				return expire(c, client.ExHExpire)
			}),
		},
		{
			Name:      "pexpire",
			Usage:     "Expire a field after a number of milliseconds",
			ArgsUsage: "KEY FIELD MILLISECONDS",
			Flags:     flags(versionFlags(), []cli.Flag{noActiveFlag()}),
			Action: action(connect, 3, false, func(c *cli.Context, client *exhash.Client) error {
				return expire(c, client.ExHPExpire)
			}),
		},
		{
			Name:      "keys",
			Usage:     "List the fields of a hash",
			ArgsUsage: "KEY",
			Action: action(connect, 1, false, func(c *cli.Context, client *exhash.Client) error {
				keys, err := client.ExHKeys(c.Args().First())
				if err != nil {
					return err
				}

				for _, key := range keys {
					if err := printLine(c, key); err != nil {
						return err
					}
				}

				return nil
			}),
		},
		{
			Name:      "vals",
			Usage:     "List the values of a hash",
			ArgsUsage: "KEY",
			Action: action(connect, 1, false, func(c *cli.Context, client *exhash.Client) error {
				values, err := client.ExHVals(c.Args().First())
				if err != nil {
					return err
				}

				return printList(c, values)
			}),
		},
		{
			Name:      "getall",
			Usage:     "List the fields and values of a hash",
			ArgsUsage: "KEY",
			Action: action(connect, 1, false, func(c *cli.Context, client *exhash.Client) error {
				fields, err := client.ExHGetAll(c.Args().First())
				if err != nil {
					return err
				}

				return printFields(c, fields)
			}),
		},
		{
			Name:      "scan",
			Usage:     "Run one step of a field scan",
			ArgsUsage: "KEY CURSOR",
			Flags:     scanFlags(),
			Action: action(connect, 2, false, func(c *cli.Context, client *exhash.Client) error {
				opts, err := options(c, false)
				if err != nil {
					return err
				}

				result, err := client.ExHScan(c.Args().Get(0), c.Args().Get(1), opts...)
				if err != nil {
					return err
				}

				if err := printLine(c, result.Cursor); err != nil {
					return err
				}

				return printFields(c, result.Fields)
			}),
		},
	}
}

type expireFunc func(key, field string, ttl command.Expiry, opts ...command.Option) (bool, error)

func expire(c *cli.Context, f expireFunc) error {
	ttl, err := strconv.ParseInt(c.Args().Get(2), 10, 64)
	if err != nil {
		return fmt.Errorf("ttl: %w", err)
	}

	opts, err := options(c, false)
	if err != nil {
		return err
	}

	ok, err := f(c.Args().Get(0), c.Args().Get(1), command.Raw(ttl), opts...)
	return printValue(c, ok, err)
}

func printLine(c *cli.Context, line string) error {
	_, err := io.WriteString(c.App.Writer, line+"\n")
	return err
}

func printValue(c *cli.Context, value interface{}, err error) error {
	if err != nil {
		return err
	}

	return printLine(c, fmt.Sprint(value))
}

func printBytes(c *cli.Context, value []byte, err error) error {
	if err == exhash.ErrNil {
		return printLine(c, nilOutput)
	}

	if err != nil {
		return err
	}

	return printLine(c, string(value))
}

func printList(c *cli.Context, values [][]byte) error {
	for _, value := range values {
		if err := printBytes(c, value, bytesOrNil(value)); err != nil {
			return err
		}
	}

	return nil
}

func printFields(c *cli.Context, fields []exhash.FieldValue) error {
	for _, field := range fields {
		if err := printLine(c, fmt.Sprintf("%s=%s", field.Field, field.Value)); err != nil {
			return err
		}
	}

	return nil
}

func bytesOrNil(value []byte) error {
	if value == nil {
		return exhash.ErrNil
	}

	return nil
}
