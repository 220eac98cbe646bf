// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command griddemo serves an employee dataset over the grid HTTP protocol.
//
//	griddemo -config ./cmd/griddemo/config.json
package main

import (
	"flag"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/patrickascher/datagrid/config"
	"github.com/patrickascher/datagrid/config/viper"
	"github.com/patrickascher/datagrid/grid"
	"github.com/patrickascher/datagrid/grid/options"
	"github.com/patrickascher/datagrid/server"
)

var departments = []options.Item{
	{Text: "Sales", Value: "sales"},
	{Text: "Development", Value: "dev"},
	{Text: "Support", Value: "support"},
}

func main() {
	file := flag.String("config", "cmd/griddemo/config.json", "configuration file")
	flag.Parse()

	var cfg config.Application
	err := config.Load(config.VIPER, &cfg, viper.Options{
		FileName:     filepath.Base(*file),
		FilePath:     filepath.Dir(*file),
		FileType:     strings.TrimPrefix(filepath.Ext(*file), "."),
		EnvPrefix:    "GRIDDEMO",
		EnvAutomatic: true,
	})
	if err != nil {
		log.Fatal(err)
	}

	s, err := server.New(cfg)
	if err != nil {
		log.Fatal(err)
	}

	if err = s.AddGrid("Employees", employees(cfg.Grid.Locale)); err != nil {
		log.Fatal(err)
	}
	err = s.AddOptions("Department", func(query map[string]string) []options.Item {
		if v := query["value"]; v != "" {
			for _, d := range departments {
				if d.Value == v {
					return []options.Item{d}
				}
			}
			return []options.Item{}
		}
		return departments
	})
	if err != nil {
		log.Fatal(err)
	}

	if err = s.Start(); err != nil {
		s.Logger().Error(err.Error())
	}
}

// employees returns the demo dataset with soft deleted rows and a department join.
func employees(locale string) server.Dataset {
	names := []string{"Anna", "Bert", "Carla", "Dora", "Emil", "Ayşe", "Zoë", "Ömer"}
	rows := make([]grid.Row, 0, 101)
	for i := 0; i < 101; i++ {
		d := departments[i%len(departments)]
		row := grid.Row{
			"id":         i + 1,
			"Name":       fmt.Sprintf("%s %d", names[i%len(names)], i+1),
			"Age":        18 + (i*7)%47,
			"Salary":     1800 + float64(i%13)*125.5,
			"Department": map[string]interface{}{"name": d.Text, "code": d.Value},
			"DeletedAt":  nil,
		}
		if i%17 == 0 {
			row["DeletedAt"] = "2021-06-01"
		}
		rows = append(rows, row)
	}

	src := grid.NewLocalSource(rows, locale)
	src.DeletedField = "DeletedAt"

	return server.Dataset{
		Columns: []grid.Column{
			grid.NewColumn("id", grid.Int).SetLabel("#").SetWidth(60),
			grid.NewColumn("Name", grid.Text).SetSearchable(true),
			grid.NewColumn("Age", grid.Int).SetSearchable(true),
			grid.NewColumn("Salary", grid.Money),
			grid.NewColumn("Department", grid.Select).
				SetSearchable(true).
				SetSearchField("Department.name").
				SetJoinTable("department").
				SetLoad(&options.Load{URL: options.StaticURL("/api/options/Department")}),
		},
		Source: src,
		Joins:  []grid.JoinOption{{Key: "department", Label: "Department", Default: true}},
	}
}
