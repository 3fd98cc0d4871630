package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "slotctl",
		Usage: "бронирование учебных слотов в кафе кампуса",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Value: "config.toml", Usage: "путь к TOML конфигурации", EnvVars: []string{"CONFIG_PATH"}},
			&cli.StringFlag{Name: "api-url", Usage: "адрес API, переопределяет client.api_url"},
			&cli.StringFlag{Name: "mode", Usage: "режим бронирования: confirm | immediate"},
		},
		Commands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "показать занятость слотов на дату",
				Flags:  []cli.Flag{dateFlag()},
				Action: withSession(runShow),
			},
			{
				Name:  "book",
				Usage: "забронировать слот",
				Flags: []cli.Flag{
					dateFlag(),
					&cli.StringFlag{Name: "lesson", Aliases: []string{"l"}, Required: true, Usage: "LESSON1 | LESSON2 | LESSON3"},
					&cli.BoolFlag{Name: "tv", Usage: "слот с телевизором"},
					&cli.StringFlag{Name: "group", Aliases: []string{"g"}, Usage: "название группы"},
				},
				Action: withSession(runBook),
			},
			{
				Name:   "my",
				Usage:  "мои бронирования",
				Action: withSession(runMy),
			},
			{
				Name:  "cancel",
				Usage: "отменить своё бронирование",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "day", Required: true, Usage: "ID дня бронирования"},
					&cli.StringFlag{Name: "detail", Required: true, Usage: "ID детали"},
				},
				Action: withSession(runCancel),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "slotctl: %v\n", err)
		os.Exit(1)
	}
}

func dateFlag() cli.Flag {
	return &cli.StringFlag{Name: "date", Aliases: []string{"d"}, Required: true, Usage: "дата в формате YYYY-MM-DD"}
}
