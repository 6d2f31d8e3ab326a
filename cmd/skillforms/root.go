package main

import (
	"errors"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"skillswap-forms/pkg/config"
	"skillswap-forms/pkg/forms"
	"skillswap-forms/pkg/logger"
	"skillswap-forms/pkg/validator"
)

// errInvalidInput check 命令发现无效字段时返回，退出码为 1
var errInvalidInput = errors.New("form input is invalid")

// app 命令共用的依赖
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	registry *forms.Registry
}

func newRootCmd() *cobra.Command {
	var cfgFile string
	v := viper.New()

	root := &cobra.Command{
		Use:           "skillforms",
		Short:         "Form validation service for the skill exchange site",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (yaml, toml or json)")
	root.PersistentFlags().String("forms", "", "YAML file with form definitions")
	root.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	_ = v.BindPFlag("forms.file", root.PersistentFlags().Lookup("forms"))
	_ = v.BindPFlag("log.level", root.PersistentFlags().Lookup("log-level"))

	setup := func() (*app, error) {
		return newApp(v, cfgFile)
	}

	root.AddCommand(newServeCmd(setup), newFormsCmd(setup), newCheckCmd(setup))
	return root
}

// newApp 加载配置、日志和表单注册表
func newApp(v *viper.Viper, cfgFile string) (*app, error) {
	cfg, err := config.LoadWith(v, cfgFile)
	if err != nil {
		return nil, err
	}
	l, err := logger.New(cfg.Log)
	if err != nil {
		return nil, err
	}

	registry, err := forms.NewDefaultRegistry(
		forms.WithLogger(l),
		forms.WithEngine(validator.Default()),
	)
	if err != nil {
		return nil, err
	}
	if cfg.Forms.File != "" {
		if err := registry.LoadFile(cfg.Forms.File); err != nil {
			return nil, err
		}
	}
	return &app{cfg: cfg, logger: l, registry: registry}, nil
}

func exitCode(err error) int {
	if errors.Is(err, errInvalidInput) {
		return 1
	}
	return 2
}
