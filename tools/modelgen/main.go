package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gen"
	"gorm.io/gorm"
)

// tables mirrors migrations/; schema_migrations is bookkeeping and stays out.
var tables = []string{"villages", "jobs", "movements", "domain_events", "world_clock_state"}

func main() {
	var dsn, out string
	flag.StringVar(&dsn, "dsn", os.Getenv("VILLAGETICK_DB_DSN"), "postgres dsn")
	flag.StringVar(&out, "out", "internal/adapter/repo/gorm/model", "output dir for generated models")
	flag.Parse()

	if dsn == "" {
		log.Fatal("missing --dsn or VILLAGETICK_DB_DSN")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("open postgres: %v", err)
	}

	g := gen.NewGenerator(gen.Config{
		OutPath:       out,
		ModelPkgPath:  "model",
		FieldNullable: true,
	})
	g.UseDB(db)
	g.WithDataTypeMap(map[string]func(columnType gorm.ColumnType) (dataType string){
		"jsonb": func(gorm.ColumnType) string { return "[]byte" },
		"int4":  func(gorm.ColumnType) string { return "int32" },
	})
	for _, table := range tables {
		g.GenerateModel(table)
	}
	g.Execute()

	fmt.Printf("generated %d gorm models at %s\n", len(tables), out)
}
