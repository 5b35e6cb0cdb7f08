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

package alarms

import (
	"fmt"

	"github.com/gravitational/trace"
)

// ConfigError describes a mistake in the alarm configuration file:
// a malformed section or notification name, an unsupported notification
// level or an invalid alarm option value.
type ConfigError struct {
	// Message is the error message
	Message string
}

// Error returns the error message
func (e *ConfigError) Error() string {
	return e.Message
}

// IsBadParameterError marks configuration errors as bad parameters
// so that trace.IsBadParameter recognizes them
func (e *ConfigError) IsBadParameterError() bool {
	return true
}

// IsConfigError returns true if err is or wraps a ConfigError
func IsConfigError(err error) bool {
	_, ok := trace.Unwrap(err).(*ConfigError)
	return ok
}

func configErrorf(format string, args ...interface{}) error {
	return trace.Wrap(&ConfigError{Message: fmt.Sprintf(format, args...)})
}
