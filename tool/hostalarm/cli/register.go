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
	"fmt"

	"github.com/gravitational/hostalarm/lib/constants"
	"github.com/gravitational/hostalarm/lib/defaults"
	"github.com/gravitational/hostalarm/tool/common"

	"gopkg.in/alecthomas/kingpin.v2"
)

// RegisterCommands registers all hostalarm tool flags, arguments and subcommands
func RegisterCommands(app *kingpin.Application) Application {
	hostalarm := Application{
		Application: app,
	}

	hostalarm.Debug = app.Flag("debug", "Enable debug mode.").Bool()
	hostalarm.Region = app.Flag("region", "AWS region. Defaults to the region of the instance when running on AWS.").Envar(constants.EnvVarRegion).String()
	hostalarm.ConfigPath = app.Flag("config", "Path to the alarm configuration file. An environment overlay <name>.<env>.ini next to it is applied when present.").Envar(constants.EnvVarConfig).Default(defaults.AlarmsConfigFile).String()
	hostalarm.Environment = app.Flag("env", "Environment to manage alarms for.").Envar(constants.EnvVarEnvironment).String()

	hostalarm.AlarmsCmd.CmdClause = app.Command("alarms", "Operations with hostclass alarms.")

	hostalarm.AlarmsListCmd.CmdClause = hostalarm.AlarmsCmd.Command("list", "Display the alarms configured for a hostclass.").Alias("ls")
	hostalarm.AlarmsListCmd.Hostclass = hostalarm.AlarmsListCmd.Arg("hostclass", "Hostclass name.").Required().String()
	hostalarm.AlarmsListCmd.AutoscalingGroup = hostalarm.AlarmsListCmd.Flag("group", "Autoscaling group of the hostclass. Looked up by tags if unspecified.").String()
	hostalarm.AlarmsListCmd.Format = common.Format(hostalarm.AlarmsListCmd.Flag("format", fmt.Sprintf("Output format: %v.", constants.OutputFormats)).Default(string(constants.EncodingText)))

	hostalarm.AlarmsCreateCmd.CmdClause = hostalarm.AlarmsCmd.Command("create", "Create or update the alarms of a hostclass in CloudWatch.")
	hostalarm.AlarmsCreateCmd.Hostclass = hostalarm.AlarmsCreateCmd.Arg("hostclass", "Hostclass name.").Required().String()
	hostalarm.AlarmsCreateCmd.AutoscalingGroup = hostalarm.AlarmsCreateCmd.Flag("group", "Autoscaling group of the hostclass. Looked up by tags if unspecified.").String()
	hostalarm.AlarmsCreateCmd.DryRun = hostalarm.AlarmsCreateCmd.Flag("dry-run", "Display the alarm requests without creating them.").Bool()

	hostalarm.AlarmsDeleteCmd.CmdClause = hostalarm.AlarmsCmd.Command("delete", "Delete the alarms of a hostclass from CloudWatch.").Alias("rm")
	hostalarm.AlarmsDeleteCmd.Hostclass = hostalarm.AlarmsDeleteCmd.Arg("hostclass", "Hostclass name.").Required().String()

	hostalarm.AlarmsDecodeCmd.CmdClause = hostalarm.AlarmsCmd.Command("decode", "Decode an alarm name into its parts.")
	hostalarm.AlarmsDecodeCmd.Name = hostalarm.AlarmsDecodeCmd.Arg("name", "Alarm name.").Required().String()
	hostalarm.AlarmsDecodeCmd.Format = common.Format(hostalarm.AlarmsDecodeCmd.Flag("format", fmt.Sprintf("Output format: %v.", constants.OutputFormats)).Default(string(constants.EncodingText)))

	hostalarm.NotificationsCmd.CmdClause = app.Command("notifications", "Operations with alarm notifications.")

	hostalarm.NotificationsListCmd.CmdClause = hostalarm.NotificationsCmd.Command("list", "Display the notifications configured for the environment.").Alias("ls")
	hostalarm.NotificationsListCmd.Format = common.Format(hostalarm.NotificationsListCmd.Flag("format", fmt.Sprintf("Output format: %v.", constants.OutputFormats)).Default(string(constants.EncodingText)))

	hostalarm.NotificationsSyncCmd.CmdClause = hostalarm.NotificationsCmd.Command("sync", "Create notification topics and subscribe missing endpoints.")

	hostalarm.ELBCmd.CmdClause = app.Command("elb", "Operations with load balancer names.")

	hostalarm.ELBIDCmd.CmdClause = hostalarm.ELBCmd.Command("id", "Display the load balancer names of a hostclass.")
	hostalarm.ELBIDCmd.Hostclass = hostalarm.ELBIDCmd.Arg("hostclass", "Hostclass name.").Required().String()
	hostalarm.ELBIDCmd.Testing = hostalarm.ELBIDCmd.Flag("testing", "Use the load balancer of the testing deployment.").Bool()
	hostalarm.ELBIDCmd.Domain = hostalarm.ELBIDCmd.Flag("domain", "DNS domain to display the load balancer CNAME for.").String()

	return hostalarm
}
