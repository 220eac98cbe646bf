// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package viper provides a wrapper for the https://github.com/spf13/viper package.
// By default, the watcher will automatically unmarshal the file changes into the configuration struct.
// An additional callback gets access to the viper instance.
package viper

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/patrickascher/datagrid/config"
	"github.com/patrickascher/datagrid/registry"
	"github.com/spf13/viper"
)

// init registers the viper provider.
func init() {
	err := registry.Set(config.VIPER, new(viperProvider))
	if err != nil {
		log.Fatal(err)
	}
}

// Error messages
var (
	ErrOptions   = errors.New("viper-provider: options must be of type viper.Options")
	ErrMandatory = errors.New("viper-provider: viper.Options file-name, path and type are mandatory")
)

// Options for the viper provider.
type Options struct {
	// FileName of the configuration.
	FileName string
	// FileType of the configuration (json, toml, yaml, ...).
	FileType string
	// FilePath to look into.
	FilePath string
	// Watch for file changes.
	Watch bool
	// WatchCallback is called after the config struct got updated.
	WatchCallback func(cfg interface{}, viper *viper.Viper, e fsnotify.Event)
	// EnvPrefix of the environment variables.
	EnvPrefix string
	// EnvAutomatic check if environment variables match any of the existing keys.
	EnvAutomatic bool
	// EnvBind binds a Viper key to a ENV variable.
	EnvBind []string
}

// instances of viper by the absolute file path.
var (
	instances = map[string]*instance{}
	mutex     sync.Mutex
)

// instance with the configuration and options.
type instance struct {
	viper   *viper.Viper
	cfg     interface{}
	options Options
}

// viperProvider satisfies the config.Interface.
type viperProvider struct{}

// Parse configures viper and unmarshal the config into the config struct.
// Filename, path and type are mandatory.
func (vp *viperProvider) Parse(cfg interface{}, opt interface{}) error {
	options, ok := opt.(Options)
	if !ok {
		return ErrOptions
	}
	if options.FileName == "" || options.FilePath == "" || options.FileType == "" {
		return ErrMandatory
	}

	i, err := instanceOf(cfg, options)
	if err != nil {
		return fmt.Errorf("viper-provider: %w", err)
	}

	i.viper.SetConfigFile(filepath.Join(options.FilePath, options.FileName))
	i.viper.SetConfigType(options.FileType)

	i.viper.OnConfigChange(func(e fsnotify.Event) {
		mutex.Lock()
		inst, ok := instances[e.Name]
		mutex.Unlock()
		if !ok {
			return
		}
		_ = inst.viper.Unmarshal(inst.cfg)
		if inst.options.WatchCallback != nil {
			inst.options.WatchCallback(inst.cfg, inst.viper, e)
		}
	})

	if options.EnvPrefix != "" {
		i.viper.SetEnvPrefix(options.EnvPrefix)
	}
	if len(options.EnvBind) != 0 {
		_ = i.viper.BindEnv(options.EnvBind...)
	}
	if options.EnvAutomatic {
		i.viper.AutomaticEnv()
	}

	if err = i.viper.ReadInConfig(); err != nil {
		return fmt.Errorf("viper-provider: %w", err)
	}

	// the watcher spawns a goroutine.
	if options.Watch {
		i.viper.WatchConfig()
	}

	return i.viper.Unmarshal(cfg)
}

// instanceOf returns the existing viper instance of the file or creates a new one.
// On an existing instance the cfg and options are replaced.
func instanceOf(cfg interface{}, opt Options) (*instance, error) {
	name, err := filepath.Abs(filepath.Join(opt.FilePath, opt.FileName))
	if err != nil {
		return nil, err
	}
	if _, err = os.Stat(name); err != nil {
		return nil, err
	}

	mutex.Lock()
	defer mutex.Unlock()
	i, ok := instances[name]
	if !ok {
		i = &instance{viper: viper.New()}
		instances[name] = i
	}
	i.cfg = cfg
	i.options = opt

	return i, nil
}
