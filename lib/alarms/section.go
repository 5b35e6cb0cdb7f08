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

// Section identifies an alarm config section named
// {team}.{namespace}.{metric_name}[.{hostclass}]
type Section struct {
	// Team owns the alarm
	Team string
	// Namespace is the CloudWatch namespace of the metric
	Namespace string
	// MetricName is the metric name, may contain dots
	MetricName string
	// Hostclass is set for hostclass-specific sections and empty for
	// sections that apply to every hostclass
	Hostclass string
}

// DecodeSection parses the section name into its fields.
//
// With four or more dot-separated segments the last one is the hostclass and
// everything between the namespace and the hostclass is the metric name, which
// allows metric names like ClusterStatus.red. Three segments describe an alarm for
// all hostclasses.
func DecodeSection(name string) (*Section, error) {
	segments := strings.Split(name, ".")
	switch {
	case len(segments) >= 4:
		return &Section{
			Team:       segments[0],
			Namespace:  segments[1],
			MetricName: strings.Join(segments[2:len(segments)-1], "."),
			Hostclass:  segments[len(segments)-1],
		}, nil
	case len(segments) == 3:
		return &Section{
			Team:       segments[0],
			Namespace:  segments[1],
			MetricName: segments[2],
		}, nil
	}
	return nil, configErrorf("not an alarm config section: %q", name)
}

// ParentName returns the name of the section shared by all hostclasses
func (s Section) ParentName() string {
	return strings.Join([]string{s.Team, s.Namespace, s.MetricName}, ".")
}

// ChildName returns the name of the section specific to the given hostclass
func (s Section) ChildName(hostclass string) string {
	return strings.Join([]string{s.Team, s.Namespace, s.MetricName, hostclass}, ".")
}

// String returns the section name
func (s Section) String() string {
	if s.Hostclass == "" {
		return s.ParentName()
	}
	return s.ChildName(s.Hostclass)
}
