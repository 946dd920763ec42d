// scenetool moves scene and prefab documents between JSON files and the
// scene database.
//
// Usage:
//
//	go run ./cmd/scenetool [-config path] <command> [args]
//
// Commands:
//
//	list                         stored scenes with revision and entity count
//	import <file> [name]         store a scene file (name defaults to the document's)
//	export <name> <file> [rev]   write the latest or a given revision to a file
//	history <name>               list the revisions of a scene
//	delete <name>                remove a scene and its history
//	prefabs                      stored prefab names
//	prefab-import <name> <file>  store a prefab file
//	prefab-export <name> <file>  write a stored prefab to a file
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/farixgo/engine/internal/config"
	"github.com/farixgo/engine/internal/persist"
	"github.com/farixgo/engine/internal/scene"
)

func main() {
	cfgPath := flag.String("config", config.Path(), "engine config with the [database] section")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: scenetool [-config path] <list|import|export|history|delete|prefabs|prefab-import|prefab-export> [args]")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}
	if err := run(*cfgPath, flag.Arg(0), flag.Args()[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "scenetool: %v\n", err)
		os.Exit(1)
	}
}

func run(cfgPath, cmd string, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := persist.NewDB(ctx, cfg.Database, zap.NewNop())
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer db.Close()
	if _, err := db.Migrate(ctx); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}

	scenes := persist.NewSceneRepo(db)
	prefabs := persist.NewPrefabRepo(db)

	switch cmd {
	case "list":
		return list(ctx, scenes)
	case "import":
		if len(args) < 1 {
			return fmt.Errorf("import needs <file> [name]")
		}
		name := ""
		if len(args) > 1 {
			name = args[1]
		}
		return importScene(ctx, scenes, args[0], name)
	case "export":
		if len(args) < 2 {
			return fmt.Errorf("export needs <name> <file> [rev]")
		}
		rev := 0
		if len(args) > 2 {
			if rev, err = strconv.Atoi(args[2]); err != nil {
				return fmt.Errorf("bad revision %q", args[2])
			}
		}
		return exportScene(ctx, scenes, args[0], args[1], rev)
	case "history":
		if len(args) < 1 {
			return fmt.Errorf("history needs <name>")
		}
		return history(ctx, scenes, args[0])
	case "delete":
		if len(args) < 1 {
			return fmt.Errorf("delete needs <name>")
		}
		if err := scenes.Delete(ctx, args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted scene %s\n", args[0])
		return nil
	case "prefabs":
		names, err := prefabs.Names(ctx)
		if err != nil {
			return err
		}
		for _, n := range names {
			fmt.Println(n)
		}
		return nil
	case "prefab-import":
		if len(args) < 2 {
			return fmt.Errorf("prefab-import needs <name> <file>")
		}
		return importPrefab(ctx, prefabs, args[0], args[1])
	case "prefab-export":
		if len(args) < 2 {
			return fmt.Errorf("prefab-export needs <name> <file>")
		}
		doc, err := prefabs.Load(ctx, args[0])
		if err != nil {
			return err
		}
		if err := os.WriteFile(args[1], doc, 0o644); err != nil {
			return err
		}
		fmt.Printf("Wrote prefab %s to %s\n", args[0], args[1])
		return nil
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func list(ctx context.Context, repo *persist.SceneRepo) error {
	rows, err := repo.List(ctx)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Println("No scenes stored")
		return nil
	}
	fmt.Printf("%-24s %5s %8s  %s\n", "NAME", "REV", "ENTITIES", "UPDATED")
	for _, r := range rows {
		fmt.Printf("%-24s %5d %8d  %s\n", r.Name, r.Revision, r.Entities, r.UpdatedAt.Format(time.RFC3339))
	}
	return nil
}

// importScene checks that the file decodes as a scene document before
// storing it.
func importScene(ctx context.Context, repo *persist.SceneRepo, path, name string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var doc scene.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("%s: not a scene document: %w", path, err)
	}
	if name == "" {
		name = doc.Name
	}
	if name == "" {
		return fmt.Errorf("%s: scene has no name, pass one", path)
	}
	rev, err := repo.Save(ctx, name, raw)
	if err != nil {
		return err
	}
	fmt.Printf("Stored %s as %s revision %d (%d entities)\n", path, name, rev, len(doc.Entities))
	return nil
}

func exportScene(ctx context.Context, repo *persist.SceneRepo, name, path string, rev int) error {
	var doc []byte
	if rev > 0 {
		var err error
		if doc, err = repo.LoadRevision(ctx, name, rev); err != nil {
			return err
		}
	} else {
		row, err := repo.Load(ctx, name)
		if err != nil {
			return err
		}
		doc, rev = row.Document, row.Revision
	}
	if err := os.WriteFile(path, doc, 0o644); err != nil {
		return err
	}
	fmt.Printf("Wrote %s revision %d to %s\n", name, rev, path)
	return nil
}

func history(ctx context.Context, repo *persist.SceneRepo, name string) error {
	revs, err := repo.History(ctx, name)
	if err != nil {
		return err
	}
	if len(revs) == 0 {
		return fmt.Errorf("%w: %q", persist.ErrSceneNotFound, name)
	}
	for _, r := range revs {
		fmt.Printf("%5d  %s\n", r.Revision, r.CreatedAt.Format(time.RFC3339))
	}
	return nil
}

func importPrefab(ctx context.Context, repo *persist.PrefabRepo, name, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var doc scene.PrefabDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("%s: not a prefab document: %w", path, err)
	}
	if err := repo.Save(ctx, name, raw); err != nil {
		return err
	}
	fmt.Printf("Stored prefab %s from %s\n", name, path)
	return nil
}
