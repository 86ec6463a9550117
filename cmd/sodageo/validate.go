package main

import (
	"fmt"

	"github.com/CityofSantaMonica/SODA.NET-sub000/column"
	"github.com/rs/zerolog/log"
)

type validateCommand struct {
	Kind  string `short:"k" long:"kind"  required:"true" description:"Column kind (point, multipoint, line, multiline, polygon, multipolygon, location)"`
	Input string `short:"i" long:"input" description:"Upload cell file (default stdin)"`

	app *app
}

func (c *validateCommand) Execute([]string) error {
	kind, err := column.ParseKind(c.Kind)
	if err != nil {
		return err
	}

	data, err := c.app.readInput(c.Input)
	if err != nil {
		return err
	}

	col, err := column.Parse(kind, data)
	if err != nil {
		return err
	}

	log.Debug().Str("kind", string(kind)).Str("type", string(col.Geometry().Type())).Msg("Cell is valid")
	_, err = fmt.Fprintf(c.app.stdout, "valid %s: %s\n", kind, col.Geometry().WKT())
	return err
}
