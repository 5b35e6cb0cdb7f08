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
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/gravitational/hostalarm/lib/alarms"
	cloudaws "github.com/gravitational/hostalarm/lib/cloudprovider/aws"
	"github.com/gravitational/hostalarm/lib/constants"
	"github.com/gravitational/hostalarm/tool/common"

	"github.com/gravitational/trace"
	"github.com/olekukonko/tablewriter"
)

func listAlarms(ctx context.Context, env *environment, hostclass, groupName string, format constants.Format) error {
	resolver, err := env.Resolver()
	if err != nil {
		return trace.Wrap(err)
	}
	result, err := resolver.Alarms(ctx, hostclass, groupName)
	if err != nil {
		return trace.Wrap(err)
	}
	alarms.SortByName(result)

	if format != constants.EncodingText {
		return common.PrintEncoded(os.Stdout, result, format)
	}
	if len(result) == 0 {
		fmt.Printf("No alarms configured for %v in %v.\n", hostclass, env.Environment)
		return nil
	}
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Name", "Namespace", "Metric", "Statistic", "Threshold", "Periods", "Topic", "Dimensions"})
	var data [][]string
	for _, alarm := range result {
		comparison := ">"
		if alarm.ThresholdType == constants.ThresholdMin {
			comparison = "<"
		}
		data = append(data, []string{
			alarm.Name(),
			alarm.Namespace,
			alarm.MetricName,
			alarm.Statistic,
			fmt.Sprintf("%v %v", comparison, alarm.Threshold),
			fmt.Sprintf("%v x %vs", alarm.Duration, alarm.Period),
			alarm.NotificationTopic(),
			formatDimensions(alarm.Dimensions()),
		})
	}
	table.AppendBulk(data)
	table.Render()
	return nil
}

func createAlarms(ctx context.Context, env *environment, hostclass, groupName string, dryRun bool) error {
	resolver, err := env.Resolver()
	if err != nil {
		return trace.Wrap(err)
	}
	result, err := resolver.Alarms(ctx, hostclass, groupName)
	if err != nil {
		return trace.Wrap(err)
	}
	alarms.SortByName(result)
	if len(result) == 0 {
		fmt.Printf("No alarms configured for %v in %v.\n", hostclass, env.Environment)
		return nil
	}

	if dryRun {
		requests := make([]alarms.MetricAlarm, 0, len(result))
		for _, alarm := range result {
			requests = append(requests, alarm.MetricAlarm(alarm.NotificationTopic()))
		}
		return common.PrintEncoded(os.Stdout, requests, constants.EncodingYAML)
	}

	session, err := env.Session()
	if err != nil {
		return trace.Wrap(err)
	}
	notifications, err := cloudaws.NewNotificationManager(cloudaws.NotificationManagerConfig{
		Session: session,
	})
	if err != nil {
		return trace.Wrap(err)
	}
	manager, err := cloudaws.NewAlarmManager(cloudaws.AlarmManagerConfig{
		Session: session,
	})
	if err != nil {
		return trace.Wrap(err)
	}

	requests := make([]alarms.MetricAlarm, 0, len(result))
	for _, alarm := range result {
		topicARN, err := notifications.EnsureTopic(ctx, alarm.NotificationTopic())
		if err != nil {
			return trace.Wrap(err)
		}
		requests = append(requests, alarm.MetricAlarm(topicARN))
	}
	if err := manager.PutAlarms(ctx, requests); err != nil {
		return trace.Wrap(err)
	}
	fmt.Printf("Created %v alarms for %v in %v.\n", len(requests), hostclass, env.Environment)
	return nil
}

func deleteAlarms(ctx context.Context, env *environment, hostclass string) error {
	session, err := env.Session()
	if err != nil {
		return trace.Wrap(err)
	}
	manager, err := cloudaws.NewAlarmManager(cloudaws.AlarmManagerConfig{
		Session: session,
	})
	if err != nil {
		return trace.Wrap(err)
	}
	deleted, err := manager.DeleteHostclassAlarms(ctx, env.Environment, hostclass)
	if err != nil {
		return trace.Wrap(err)
	}
	for _, name := range deleted {
		fmt.Printf("Deleted %v.\n", name)
	}
	fmt.Printf("Deleted %v alarms for %v in %v.\n", len(deleted), hostclass, env.Environment)
	return nil
}

func decodeAlarmName(name string, format constants.Format) error {
	parts := alarms.DecodeName(name)
	if parts == nil {
		return trace.BadParameter("alarm name %q cannot be decoded: "+
			"expected team_env_hostclass_metric_type or env_hostclass_metric_type", name)
	}
	if format != constants.EncodingText {
		return common.PrintEncoded(os.Stdout, parts, format)
	}
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Team", "Environment", "Hostclass", "Metric", "Type"})
	table.Append([]string{parts.Team, parts.Environment, parts.Hostclass, parts.MetricName, parts.ThresholdType})
	table.Render()
	return nil
}

func formatDimensions(dimensions map[string]string) string {
	pairs := make([]string, 0, len(dimensions))
	for name, value := range dimensions {
		pairs = append(pairs, name+"="+value)
	}
	sort.Strings(pairs)
	return strings.Join(pairs, ",")
}
