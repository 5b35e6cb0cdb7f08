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

package cli

import (
	"github.com/gravitational/hostalarm/lib/constants"

	"gopkg.in/alecthomas/kingpin.v2"
)

// Application represents the command-line "hostalarm" application and contains
// definitions of all its flags, arguments and subcommands
type Application struct {
	*kingpin.Application
	// Debug allows to run the command in debug mode
	Debug *bool
	// Region is the AWS region
	Region *string
	// ConfigPath is the path to the alarm configuration file
	ConfigPath *string
	// Environment is the environment alarms are managed for
	Environment *string
	// AlarmsCmd combines commands operating on alarms
	AlarmsCmd AlarmsCmd
	// AlarmsListCmd displays the alarms of a hostclass
	AlarmsListCmd AlarmsListCmd
	// AlarmsCreateCmd creates the alarms of a hostclass
	AlarmsCreateCmd AlarmsCreateCmd
	// AlarmsDeleteCmd deletes the alarms of a hostclass
	AlarmsDeleteCmd AlarmsDeleteCmd
	// AlarmsDecodeCmd decodes an alarm name
	AlarmsDecodeCmd AlarmsDecodeCmd
	// NotificationsCmd combines commands operating on notifications
	NotificationsCmd NotificationsCmd
	// NotificationsListCmd displays the notifications of the environment
	NotificationsListCmd NotificationsListCmd
	// NotificationsSyncCmd creates notification topics and subscriptions
	NotificationsSyncCmd NotificationsSyncCmd
	// ELBCmd combines commands operating on load balancer names
	ELBCmd ELBCmd
	// ELBIDCmd displays the load balancer names of a hostclass
	ELBIDCmd ELBIDCmd
}

// AlarmsCmd combines commands operating on alarms
type AlarmsCmd struct {
	*kingpin.CmdClause
}

// AlarmsListCmd displays the alarms of a hostclass
type AlarmsListCmd struct {
	*kingpin.CmdClause
	// Hostclass is the hostclass name
	Hostclass *string
	// AutoscalingGroup overrides the autoscaling group lookup
	AutoscalingGroup *string
	// Format is output format
	Format *constants.Format
}

// AlarmsCreateCmd creates the alarms of a hostclass
type AlarmsCreateCmd struct {
	*kingpin.CmdClause
	// Hostclass is the hostclass name
	Hostclass *string
	// AutoscalingGroup overrides the autoscaling group lookup
	AutoscalingGroup *string
	// DryRun displays the alarm requests without creating them
	DryRun *bool
}

// AlarmsDeleteCmd deletes the alarms of a hostclass
type AlarmsDeleteCmd struct {
	*kingpin.CmdClause
	// Hostclass is the hostclass name
	Hostclass *string
}

// AlarmsDecodeCmd decodes an alarm name
type AlarmsDecodeCmd struct {
	*kingpin.CmdClause
	// Name is the alarm name
	Name *string
	// Format is output format
	Format *constants.Format
}

// NotificationsCmd combines commands operating on notifications
type NotificationsCmd struct {
	*kingpin.CmdClause
}

// NotificationsListCmd displays the notifications of the environment
type NotificationsListCmd struct {
	*kingpin.CmdClause
	// Format is output format
	Format *constants.Format
}

// NotificationsSyncCmd creates notification topics and subscriptions
type NotificationsSyncCmd struct {
	*kingpin.CmdClause
}

// ELBCmd combines commands operating on load balancer names
type ELBCmd struct {
	*kingpin.CmdClause
}

// ELBIDCmd displays the load balancer names of a hostclass
type ELBIDCmd struct {
	*kingpin.CmdClause
	// Hostclass is the hostclass name
	Hostclass *string
	// Testing selects the load balancer of the testing deployment
	Testing *bool
	// Domain is the DNS domain load balancers are published in
	Domain *string
}
