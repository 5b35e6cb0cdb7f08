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
	"os"

	"github.com/gravitational/hostalarm/lib/elb"

	"github.com/gravitational/trace"
	"github.com/olekukonko/tablewriter"
)

func printLoadBalancer(environment, hostclass, domainName string, testing bool) error {
	name, err := elb.Name(environment, hostclass, testing)
	if err != nil {
		return trace.Wrap(err)
	}
	id, err := elb.ID(environment, hostclass, testing)
	if err != nil {
		return trace.Wrap(err)
	}
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Property", "Value"})
	table.Append([]string{"Name", name})
	table.Append([]string{"ID", id})
	table.Append([]string{"Target group", elb.TargetGroupName(environment, hostclass)})
	if domainName != "" {
		table.Append([]string{"CNAME", elb.CNAME(environment, hostclass, domainName, testing)})
	}
	table.Render()
	return nil
}
