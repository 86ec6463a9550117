package main

import (
	"fmt"

	"github.com/CityofSantaMonica/SODA.NET-sub000/geometry"
)

type wktCommand struct {
	Input string `short:"i" long:"input" description:"Wire geometry file (default stdin)"`

	app *app
}

func (c *wktCommand) Execute([]string) error {
	data, err := c.app.readInput(c.Input)
	if err != nil {
		return err
	}

	g, err := geometry.Unmarshal(data)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(c.app.stdout, g.WKT())
	return err
}
