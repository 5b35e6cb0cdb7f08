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

package utils

import (
	"os"

	log "github.com/sirupsen/logrus"
)

// InitLogger configures the standard logger for command line use.
// Log entries go to stderr so that command output on stdout stays parseable.
func InitLogger(level log.Level) {
	log.SetFormatter(&log.TextFormatter{
		DisableTimestamp: level < log.DebugLevel,
	})
	log.SetOutput(os.Stderr)
	log.SetLevel(level)
}
