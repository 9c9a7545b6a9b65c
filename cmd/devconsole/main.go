// Copyright 2025 DevConsole Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"os"

	"github.com/devconsole/devconsole/internal/bootstrap"
	"github.com/devconsole/devconsole/pkg/version"
	"github.com/spf13/cobra"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:          "devconsole",
	Short:        "DevConsole application store backend",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, cleanup, _, err := bootstrap.Bootstrap(configFile, initApp)
		if err != nil {
			return err
		}
		bootstrap.Run(app, cleanup)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "conf", "conf.d/config.toml", "config file path, e.g. --conf ./conf.d/config.toml")
	rootCmd.AddCommand(version.VersionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
