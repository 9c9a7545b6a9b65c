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

package storage

import (
	"fmt"
	"path"
	"strings"

	"github.com/google/wire"
)

// ProviderSet provides storage related dependencies.
var ProviderSet = wire.NewSet(NewStorage)

const (
	StorageMinio = "minio"
)

// Storage holds object storage configuration.
type Storage struct {
	Provider  string `mapstructure:"provider"`
	AccessKey string `mapstructure:"accessKey"`
	SecretKey string `mapstructure:"secretKey"`
	Endpoint  string `mapstructure:"endpoint"`
	Bucket    string `mapstructure:"bucket"`
	Region    string `mapstructure:"region"`
	UseTLS    bool   `mapstructure:"useTLS"`
	BasePath  string `mapstructure:"basePath"`
}

// NewStorage creates a storage provider instance from configuration.
func NewStorage(s Storage) (StorageProvider, error) {
	switch s.Provider {
	case StorageMinio:
		return newMinio(&s)
	default:
		return nil, fmt.Errorf("unsupported storage provider: %s", s.Provider)
	}
}

// getFullPath joins the configured base path with the object name.
func getFullPath(basePath, objectName string) string {
	objectName = strings.TrimPrefix(objectName, "/")
	if basePath == "" {
		return objectName
	}
	return path.Join(strings.TrimPrefix(basePath, "/"), objectName)
}
