/*
Copyright 2020 Gravitational, Inc.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package config loads the alarm configuration file
package config

import (
	"path/filepath"
	"strings"

	"github.com/gravitational/hostalarm/lib/constants"

	"github.com/go-ini/ini"
	"github.com/gravitational/trace"
)

// Store is an alarm configuration document backed by an INI file
type Store struct {
	file *ini.File
}

// loadOptions keeps '#' and ';' inside values: endpoints may carry URL
// fragments or semicolons.
var loadOptions = ini.LoadOptions{IgnoreInlineComment: true}

// Load reads the alarm configuration from path
func Load(path string) (*Store, error) {
	file, err := ini.LoadSources(loadOptions, path)
	if err != nil {
		return nil, trace.ConvertSystemError(err)
	}
	return &Store{file: file}, nil
}

// LoadForEnvironment reads the alarm configuration from path and applies the
// optional environment overlay on top of it. The overlay lives next to the base
// file and is named after the environment: alarms.ini becomes alarms.<env>.ini.
// Options in the overlay replace options of the same section in the base file.
func LoadForEnvironment(path, environment string) (*Store, error) {
	options := loadOptions
	options.Loose = true
	file, err := ini.LoadSources(options, path, OverlayPath(path, environment))
	if err != nil {
		return nil, trace.Wrap(err)
	}
	store := &Store{file: file}
	if len(store.Sections()) == 0 {
		return nil, trace.NotFound("alarm configuration %v not found or empty", path)
	}
	return store, nil
}

// Parse parses the alarm configuration from data
func Parse(data []byte) (*Store, error) {
	file, err := ini.LoadSources(loadOptions, data)
	if err != nil {
		return nil, trace.BadParameter("failed to parse alarm configuration: %v", err)
	}
	return &Store{file: file}, nil
}

// OverlayPath returns the path of the environment overlay of the configuration file
func OverlayPath(path, environment string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "." + environment + ext
}

// Sections returns the names of all sections in file order.
// The implicit top-level section is not included.
func (s *Store) Sections() []string {
	var names []string
	for _, name := range s.file.SectionStrings() {
		if name == constants.SectionINIDefault {
			continue
		}
		names = append(names, name)
	}
	return names
}

// HasSection returns true if the section exists
func (s *Store) HasSection(name string) bool {
	_, err := s.file.GetSection(name)
	return err == nil
}

// Items returns the options of the section with option names lowercased.
// Section names stay case-sensitive. Keys of the implicit top-level section
// are not merged in.
func (s *Store) Items(name string) (map[string]string, error) {
	section, err := s.file.GetSection(name)
	if err != nil {
		return nil, trace.NotFound("no section %q in alarm configuration", name)
	}
	items := make(map[string]string, len(section.Keys()))
	for _, key := range section.Keys() {
		items[strings.ToLower(key.Name())] = key.Value()
	}
	return items, nil
}
