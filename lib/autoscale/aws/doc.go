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

/*
package aws implements the autoscaling group lookup for AWS.

Hostclasses are deployed as autoscaling groups tagged with the environment
and the hostclass name. Alarms on AWS/EC2 metrics are scoped to the
autoscaling group of the hostclass, so the alarm resolver asks the Autoscaler
for the group when the configuration does not name one explicitly.

During a blue/green deployment a hostclass temporarily has two groups;
the most recently created group is the one alarms are attached to.
*/
package aws
