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
	"sort"
	"strconv"
	"strings"

	"github.com/gravitational/hostalarm/lib/constants"
)

// Alarm option names
const (
	optionTeam                 = "team"
	optionNamespace            = "namespace"
	optionMetricName           = "metric_name"
	optionHostclass            = "hostclass"
	optionEnvironment          = "environment"
	optionDuration             = "duration"
	optionPeriod               = "period"
	optionStatistic            = "statistic"
	optionCustomMetric         = "custom_metric"
	optionLogPatternMetric     = "log_pattern_metric"
	optionAutoscalingGroupName = "autoscaling_group_name"
	optionESDomainName         = "es_domain_name"
	optionESClientID           = "es_client_id"
	optionLevel                = "level"
)

// Options is a resolved set of alarm options.
//
// Options values are never modified in place: every layer of the
// resolution produces a new set with Merge.
type Options map[string]string

// Merge returns a new set of options with overlay applied on top of base
func Merge(base, overlay Options) Options {
	merged := make(Options, len(base)+len(overlay))
	for key, value := range base {
		merged[key] = value
	}
	for key, value := range overlay {
		merged[key] = value
	}
	return merged
}

// Get returns the value of the option and whether it is set
func (o Options) Get(key string) (string, bool) {
	value, ok := o[key]
	return value, ok
}

// Bool interprets the option as a boolean flag, unset options are false
func (o Options) Bool(key string) bool {
	return IsTruthy(o[key])
}

// Keys returns the sorted option names
func (o Options) Keys() []string {
	keys := make([]string, 0, len(o))
	for key := range o {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// String returns a stable representation of the options for error messages
func (o Options) String() string {
	pairs := make([]string, 0, len(o))
	for _, key := range o.Keys() {
		pairs = append(pairs, key+"="+o[key])
	}
	return "{" + strings.Join(pairs, ", ") + "}"
}

// IsTruthy returns true if the value reads as boolean true
func IsTruthy(value string) bool {
	value = strings.ToLower(strings.TrimSpace(value))
	for _, truthy := range constants.TruthyValues {
		if value == truthy {
			return true
		}
	}
	return false
}

// parseThreshold parses the threshold as a non-negative integer literal
func parseThreshold(key string, options Options) (int64, error) {
	value := options[key]
	if !isDigits(value) {
		return 0, configErrorf("not a valid threshold value for %v: %v", key, options)
	}
	threshold, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, configErrorf("not a valid threshold value for %v: %v", key, options)
	}
	return threshold, nil
}

func isDigits(value string) bool {
	if value == "" {
		return false
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func requireOption(options Options, key string) (string, error) {
	value, ok := options[key]
	if !ok {
		return "", configErrorf("missing option %q for alarm %v.%v.%v",
			key, options[optionTeam], options[optionNamespace], options[optionMetricName])
	}
	return value, nil
}
