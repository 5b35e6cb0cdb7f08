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
	"strings"
)

// NameParts is an alarm name decoded into its fields
type NameParts struct {
	// Team is empty for legacy names without a team
	Team string `json:"team,omitempty"`
	// Environment is the environment name
	Environment string `json:"env"`
	// Hostclass is the hostclass name
	Hostclass string `json:"hostclass"`
	// MetricName is the metric name
	MetricName string `json:"metric_name"`
	// ThresholdType is max or min
	ThresholdType string `json:"threshold_type"`
}

// EncodeName builds the alarm name from its fields.
//
// Underscores in the fields are not escaped, so DecodeName only recovers
// the original fields when the metric name has no underscores.
func EncodeName(team, environment, hostclass, metricName, thresholdType string) string {
	return strings.Join([]string{team, environment, hostclass, metricName, thresholdType}, "_")
}

// DecodeName decodes an alarm name into its fields.
//
// Names with five or more parts are assumed to carry a team and any extra
// underscores are attributed to the metric name. Names with exactly four parts
// are legacy names without a team. Anything shorter cannot be decoded: DecodeName
// logs a warning and returns nil.
//
// A legacy name whose metric name contains underscores is indistinguishable from
// a name with a team and is decoded incorrectly.
func DecodeName(name string) *NameParts {
	parts := strings.Split(name, "_")
	switch {
	case len(parts) >= 5:
		return &NameParts{
			Team:          parts[0],
			Environment:   parts[1],
			Hostclass:     parts[2],
			MetricName:    strings.Join(parts[3:len(parts)-1], "_"),
			ThresholdType: parts[len(parts)-1],
		}
	case len(parts) == 4:
		return &NameParts{
			Environment:   parts[0],
			Hostclass:     parts[1],
			MetricName:    parts[2],
			ThresholdType: parts[3],
		}
	}
	log.Warnf("Skipping unparsable alarm name: %v.", name)
	return nil
}
