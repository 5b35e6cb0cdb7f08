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
	"strings"

	cloudaws "github.com/gravitational/hostalarm/lib/cloudprovider/aws"
	"github.com/gravitational/hostalarm/lib/constants"
	"github.com/gravitational/hostalarm/tool/common"

	"github.com/gravitational/trace"
	"github.com/olekukonko/tablewriter"
)

func listNotifications(env *environment, format constants.Format) error {
	resolver, err := env.Resolver()
	if err != nil {
		return trace.Wrap(err)
	}
	notifications, err := resolver.Notifications()
	if err != nil {
		return trace.Wrap(err)
	}
	if format != constants.EncodingText {
		return common.PrintEncoded(os.Stdout, notifications, format)
	}
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Topic", "Endpoints"})
	var data [][]string
	for _, notification := range notifications {
		endpoints := make([]string, 0, len(notification.Endpoints))
		for _, endpoint := range notification.Endpoints {
			endpoints = append(endpoints, fmt.Sprintf("%v (%v)",
				endpoint, cloudaws.EndpointProtocol(endpoint)))
		}
		data = append(data, []string{notification.Name, strings.Join(endpoints, ", ")})
	}
	table.AppendBulk(data)
	table.Render()
	return nil
}

func syncNotifications(ctx context.Context, env *environment) error {
	resolver, err := env.Resolver()
	if err != nil {
		return trace.Wrap(err)
	}
	notifications, err := resolver.Notifications()
	if err != nil {
		return trace.Wrap(err)
	}
	session, err := env.Session()
	if err != nil {
		return trace.Wrap(err)
	}
	manager, err := cloudaws.NewNotificationManager(cloudaws.NotificationManagerConfig{
		Session: session,
	})
	if err != nil {
		return trace.Wrap(err)
	}
	if err := manager.Sync(ctx, notifications); err != nil {
		return trace.Wrap(err)
	}
	fmt.Printf("Synchronized %v notification topics in %v.\n", len(notifications), env.Environment)
	return nil
}
