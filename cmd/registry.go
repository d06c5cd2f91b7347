package main

import (
	"fmt"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gamblecodez/drops-cli/internal/model"
	"github.com/gamblecodez/drops-cli/internal/registry"
)

var registryCmd = &cobra.Command{
	Use:   "registry",
	Short: "Manage the casino registry",
}

var registryImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import casinos from an xlsx or yaml file into the store",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		path := args[0]
		var casinos []model.Casino
		switch strings.ToLower(filepath.Ext(path)) {
		case ".xlsx":
			casinos, err = registry.ParseXLSX(path)
		case ".yaml", ".yml":
			casinos, err = registry.NewFileSource(path).Casinos(ctx)
		default:
			return eris.Errorf("unsupported registry file type: %s", path)
		}
		if err != nil {
			return eris.Wrap(err, "parse registry file")
		}

		n, err := env.Store.UpsertCasinos(ctx, casinos)
		if err != nil {
			return eris.Wrap(err, "upsert casinos")
		}
		zap.L().Info("registry imported", zap.String("file", path), zap.Int("casinos", n))
		fmt.Printf("imported %d casinos\n", n)
		return nil
	},
}

var registryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List casinos in the active registry source",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		casinos, err := env.Source.Casinos(ctx)
		if err != nil {
			return eris.Wrap(err, "load registry")
		}

		for _, c := range casinos {
			flags := make([]string, 0, 2)
			if c.SupportsSweeps {
				flags = append(flags, "sweeps")
			}
			if c.SupportsCrypto {
				flags = append(flags, "crypto")
			}
			fmt.Printf("%-25s %-25s %s\n", c.Name, c.ResolvedDomain, strings.Join(flags, ","))
		}
		fmt.Printf("%d casinos\n", len(casinos))
		return nil
	},
}

func init() {
	registryCmd.AddCommand(registryImportCmd)
	registryCmd.AddCommand(registryListCmd)
	rootCmd.AddCommand(registryCmd)
}
