package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/lox/landlord/internal/board"
	"github.com/lox/landlord/internal/dice"
	"github.com/lox/landlord/internal/player"
)

// fileConfig mirrors the HCL layout:
//
//	starting_balance = 300
//	lap_bonus        = 100
//	max_rounds       = 1000
//
//	dice {
//	  count = 1
//	  sides = 6
//	}
//
//	cell {
//	  price = 60
//	  rent  = 10
//	}
//
//	player "Demanding" {
//	  strategy  = "demanding"
//	  threshold = 50
//	}
type fileConfig struct {
	StartingBalance *int          `hcl:"starting_balance,optional"`
	LapBonus        *int          `hcl:"lap_bonus,optional"`
	MaxRounds       *int          `hcl:"max_rounds,optional"`
	Seed            *int64        `hcl:"seed,optional"`
	Dice            *diceBlock    `hcl:"dice,block"`
	Cells           []cellBlock   `hcl:"cell,block"`
	Players         []playerBlock `hcl:"player,block"`
}

type diceBlock struct {
	Count   int   `hcl:"count,optional"`
	Sides   int   `hcl:"sides"`
	Weights []int `hcl:"weights,optional"`
}

type cellBlock struct {
	Price int `hcl:"price"`
	Rent  int `hcl:"rent"`
}

type playerBlock struct {
	Name      string `hcl:"name,label"`
	Strategy  string `hcl:"strategy"`
	Threshold int    `hcl:"threshold,optional"`
}

// Load reads an HCL game file. A missing file yields Default(). Anything
// the file leaves out keeps its default value.
func Load(filename string) (Game, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return Game{}, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}
	return decode(file)
}

// Parse decodes HCL source held in memory; filename is used in diagnostics.
func Parse(src []byte, filename string) (Game, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return Game{}, fmt.Errorf("failed to parse HCL: %s", diags.Error())
	}
	return decode(file)
}

func decode(file *hcl.File) (Game, error) {
	var fc fileConfig
	if diags := gohcl.DecodeBody(file.Body, nil, &fc); diags.HasErrors() {
		return Game{}, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	g := Default()
	if fc.StartingBalance != nil {
		g.StartingBalance = *fc.StartingBalance
	}
	if fc.LapBonus != nil {
		g.LapBonus = *fc.LapBonus
	}
	if fc.MaxRounds != nil {
		g.MaxRounds = *fc.MaxRounds
	}
	g.Seed = fc.Seed

	if fc.Dice != nil {
		count := fc.Dice.Count
		if count == 0 {
			count = 1
		}
		g.Dice = dice.Options{Count: count, Sides: fc.Dice.Sides, Weights: fc.Dice.Weights}
	}

	if len(fc.Cells) > 0 {
		g.Board = make([]board.Spec, len(fc.Cells))
		for i, c := range fc.Cells {
			g.Board[i] = board.Spec{Price: c.Price, Rent: c.Rent}
		}
	}

	if len(fc.Players) > 0 {
		g.Players = make([]PlayerSpec, len(fc.Players))
		for i, p := range fc.Players {
			kind, err := player.ParseKind(p.Strategy)
			if err != nil {
				return Game{}, fmt.Errorf("player %q: %w", p.Name, err)
			}
			g.Players[i] = PlayerSpec{Name: p.Name, Strategy: kind, Threshold: p.Threshold}
		}
	}
	return g, nil
}
