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
	"sort"
	"strings"

	"github.com/gravitational/hostalarm/lib/constants"
	"github.com/gravitational/hostalarm/lib/utils"

	"github.com/gravitational/trace"
)

// Notification is a notification topic and the endpoints subscribed to it
type Notification struct {
	// Name is the topic name: team_environment_level
	Name string `json:"name"`
	// Endpoints are the subscribed endpoints in configuration order
	Endpoints []string `json:"endpoints"`
}

// String returns the notification description
func (n Notification) String() string {
	return fmt.Sprintf("Notification(%v, %v)", n.Name, n.Endpoints)
}

// Notifications returns the notifications of the resolver's environment
// sorted by name.
//
// Notification names have the form {team}_{environment}_{level}: the level
// is the last part and the environment is always the second one.
func (r *Resolver) Notifications() ([]Notification, error) {
	if !r.Store.HasSection(constants.SectionNotifications) {
		return nil, trace.NotFound("no %q section in alarm configuration",
			constants.SectionNotifications)
	}
	items, err := r.Store.Items(constants.SectionNotifications)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	names := make([]string, 0, len(items))
	for name := range items {
		names = append(names, name)
	}
	sort.Strings(names)

	var notifications []Notification
	for _, name := range names {
		parts := strings.Split(name, "_")
		if len(parts) < 3 {
			return nil, configErrorf("underscores must separate team name, "+
				"env name and notification level: %v", name)
		}
		level := parts[len(parts)-1]
		env := parts[1]
		if env != r.Environment {
			continue
		}
		if !utils.StringInSlice(constants.NotificationLevels, level) {
			return nil, configErrorf("unsupported notification level: %v", level)
		}
		notifications = append(notifications, Notification{
			Name:      name,
			Endpoints: strings.Split(items[name], ","),
		})
	}
	return notifications, nil
}
