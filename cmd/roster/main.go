package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/dmelnich/roster"
	"github.com/dmelnich/roster/internal/command"
	"github.com/dmelnich/roster/internal/config"
)

func main() {
	configPath := flag.String("config", "", "path to a roster config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	schema, err := cfg.BuildSchema()
	if err != nil {
		log.Fatal(err)
	}

	db, closer, err := roster.New(&roster.Config{Schema: schema})
	if err != nil {
		log.Fatal(err)
	}

	defer func() {
		if err := closer(); err != nil {
			log.Printf("ERROR: %v", err)
		}
	}()

	fmt.Println("roster: in-memory record store")
	fmt.Println("Type commands. 'HELP' for information or 'EXIT' to quit.")

	run(db, cfg.Prompt, schema.FieldNames())
}

func run(db *roster.DB, prompt string, names []string) {
	reader := bufio.NewReader(os.Stdin)

	for {
		fmt.Print(prompt)

		line, err := reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				return
			}

			fmt.Println("input error:", err)
			return
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		req, err := command.Parse(line)
		if err != nil {
			fmt.Println(err)
			continue
		}

		if req.Op == command.OpExit {
			fmt.Println("Exiting the record store. Goodbye!")
			return
		}

		if err := execute(db, req, names); err != nil {
			fmt.Println(err)
		}
	}
}

func execute(db *roster.DB, req *command.Request, names []string) error {
	ctx := context.Background()

	switch req.Op {
	case command.OpAdd:
		return db.Update(ctx, func(tx *roster.Tx) error {
			id, err := tx.Add(roster.Fields(req.Fields))
			if err != nil {
				return err
			}

			fmt.Printf("record added with id: %d\n", id)
			return nil
		})
	case command.OpList:
		return db.View(ctx, func(tx *roster.Tx) error {
			var records []roster.Record
			if err := tx.Find(ctx, roster.Q(), &records); err != nil {
				return err
			}

			if len(records) == 0 {
				fmt.Println("no records in the store")
				return nil
			}

			for i := range records {
				fmt.Printf("id: %d, %s\n", records[i].ID(), formatRecord(&records[i], names))
			}

			return nil
		})
	case command.OpUpdate:
		return db.Update(ctx, func(tx *roster.Tx) error {
			rec, err := tx.Update(req.ID, roster.Fields(req.Fields))
			if err != nil {
				return err
			}

			fmt.Printf("record %d updated: %s\n", rec.ID(), formatRecord(rec, names))
			return nil
		})
	case command.OpRemove:
		return db.Update(ctx, func(tx *roster.Tx) error {
			rec, err := tx.Remove(req.ID)
			if err != nil {
				return err
			}

			fmt.Printf("removed record %d: %s\n", rec.ID(), formatRecord(rec, names))
			return nil
		})
	case command.OpHelp:
		printHelp(names)
		return nil
	}

	return nil
}

func formatRecord(rec *roster.Record, names []string) string {
	pairs := make([]string, 0, len(names))
	for _, n := range names {
		v, err := rec.String(n)
		if err != nil {
			continue
		}

		pairs = append(pairs, fmt.Sprintf("%s: %s", n, v))
	}

	return strings.Join(pairs, ", ")
}

func printHelp(names []string) {
	fmt.Println("commands:")
	fmt.Println("  ADD field=value ...        create a record")
	fmt.Println("  LIST                       list all records")
	fmt.Println("  UPDATE <id> field=value    change only the given fields")
	fmt.Println("  REMOVE <id>                delete a record")
	fmt.Println("  HELP                       show this message")
	fmt.Println("  EXIT                       quit")
	fmt.Println("fields:", strings.Join(names, ", "))
}
