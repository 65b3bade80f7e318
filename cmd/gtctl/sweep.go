package main

import (
	"context"
	"fmt"
	"time"

	"gestaotemplate/internal/db"
	"gestaotemplate/internal/resources"
	"gestaotemplate/internal/services"
	"gestaotemplate/internal/tasks"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"
)

const (
	lojaFlag  = "loja"
	graceFlag = "grace"
	modeFlag  = "mode"
)

var sweepFlags = map[string]cobraflags.Flag{
	lojaFlag: &cobraflags.StringFlag{
		Name:  lojaFlag,
		Value: "",
		Usage: "Only sweep this store ID. If empty, sweeps every store",
	},
	graceFlag: &cobraflags.StringFlag{
		Name:  graceFlag,
		Value: "",
		Usage: "Keep orphans newer than this duration (default STORAGE_SWEEP_GRACE)",
	},
	modeFlag: &cobraflags.StringFlag{
		Name:  modeFlag,
		Value: "run",
		Usage: "run: sweep now in this process; enqueue: hand the sweep to the task workers",
	},
}

func newSweepCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Remove uploaded files that no record references",
		RunE:  sweepCommand,
	}
	cobraflags.RegisterMap(cmd, sweepFlags)
	return cmd
}

func sweepCommand(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	lojaID := sweepFlags[lojaFlag].GetString()
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	switch mode := sweepFlags[modeFlag].GetString(); mode {
	case "enqueue":
		client := tasks.NewTaskClient(tasks.RedisOpt(cfg.Redis))
		defer client.Close()
		id, err := client.EnqueueSweep(ctx, lojaID)
		if err != nil {
			return err
		}
		fmt.Printf("enqueued %s (%s)\n", tasks.TaskTypeStorageSweep, id)
		return nil
	case "run":
	default:
		return fmt.Errorf("unknown mode %q", mode)
	}

	grace := cfg.Tasks.SweepGrace
	if raw := sweepFlags[graceFlag].GetString(); raw != "" {
		if grace, err = time.ParseDuration(raw); err != nil {
			return fmt.Errorf("invalid --%s: %w", graceFlag, err)
		}
	}

	dbInstance, err := db.Connect(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	storage, err := services.NewStorage(ctx, cfg.Storage, cfg.Server.PublicURL)
	if err != nil {
		return err
	}

	result, err := services.NewSweeper(dbInstance, storage, resources.SweepTargets(), grace).Sweep(ctx, lojaID)
	if err != nil {
		return err
	}
	fmt.Printf("scanned %d, deleted %d, failed %d\n", result.Scanned, result.Deleted, result.Failed)
	return nil
}
