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

// package constants contains global constants
// shared between packages
package constants

const (
	// ComponentAlarms is the logging component of the alarm resolver
	ComponentAlarms = "alarms"
	// ComponentCLI is the logging component of the command line tool
	ComponentCLI = "cli"
	// ComponentAutoscale is the logging component of the autoscaling lookup
	ComponentAutoscale = "autoscale"
	// ComponentCloudWatch is the logging component of the CloudWatch alarm manager
	ComponentCloudWatch = "cloudwatch"
	// ComponentSNS is the logging component of the SNS notification manager
	ComponentSNS = "sns"

	// SectionDefaults is the name of the config section with options
	// inherited by every alarm
	SectionDefaults = "defaults"
	// SectionNotifications is the name of the config section that maps
	// notification topics to endpoints
	SectionNotifications = "notifications"
	// SectionINIDefault is the implicit top-level section of an INI document
	SectionINIDefault = "DEFAULT"

	// LevelCritical is the notification level for paging alarms
	LevelCritical = "critical"
	// LevelInfo is the notification level for informational alarms
	LevelInfo = "info"

	// NamespaceEC2 is the CloudWatch namespace of EC2 instance metrics
	NamespaceEC2 = "AWS/EC2"
	// NamespaceRDS is the CloudWatch namespace of relational database metrics
	NamespaceRDS = "AWS/RDS"
	// NamespaceELB is the CloudWatch namespace of classic load balancer metrics
	NamespaceELB = "AWS/ELB"
	// NamespaceES is the CloudWatch namespace of Elasticsearch Service metrics
	NamespaceES = "AWS/ES"

	// ThresholdMax identifies alarms that fire above the threshold
	ThresholdMax = "max"
	// ThresholdMin identifies alarms that fire below the threshold
	ThresholdMin = "min"

	// TagEnvironment is the resource tag with the environment name
	TagEnvironment = "environment"
	// TagHostclass is the resource tag with the hostclass name
	TagHostclass = "hostclass"

	// DimensionAutoScalingGroupName is the dimension of autoscaling group metrics
	DimensionAutoScalingGroupName = "AutoScalingGroupName"
	// DimensionDBInstanceIdentifier is the dimension of RDS instance metrics
	DimensionDBInstanceIdentifier = "DBInstanceIdentifier"
	// DimensionLoadBalancerName is the dimension of classic load balancer metrics
	DimensionLoadBalancerName = "LoadBalancerName"
	// DimensionDomainName is the Elasticsearch Service domain dimension
	DimensionDomainName = "DomainName"
	// DimensionClientID is the Elasticsearch Service account dimension
	DimensionClientID = "ClientId"
	// DimensionEnvHostclass is the dimension custom metrics are published with
	DimensionEnvHostclass = "env_hostclass"

	// ProtocolEmail is the SNS subscription protocol for email endpoints
	ProtocolEmail = "email"
	// ProtocolHTTP is the SNS subscription protocol for plain HTTP endpoints
	ProtocolHTTP = "http"
	// ProtocolHTTPS is the SNS subscription protocol for HTTPS endpoints
	ProtocolHTTPS = "https"

	// EnvVarEnvironment names the environment when --env is omitted
	EnvVarEnvironment = "HOSTALARM_ENV"
	// EnvVarConfig names the alarm config file when --config is omitted
	EnvVarConfig = "HOSTALARM_CONFIG"
	// EnvVarRegion is the standard AWS region environment variable
	EnvVarRegion = "AWS_REGION"
)

var (
	// NotificationLevels lists the supported notification levels
	NotificationLevels = []string{LevelCritical, LevelInfo}

	// ThresholdOptions maps alarm option names to the threshold side they produce.
	// Order matters: max alarms are produced before min alarms.
	ThresholdOptions = []ThresholdOption{
		{Key: "threshold_max", Type: ThresholdMax},
		{Key: "threshold_min", Type: ThresholdMin},
	}

	// TruthyValues lists option values interpreted as boolean true
	TruthyValues = []string{"true", "yes", "t", "y", "aye", "1"}
)

// ThresholdOption binds a threshold option key to its threshold side
type ThresholdOption struct {
	// Key is the option name, e.g. threshold_max
	Key string
	// Type is the threshold side, max or min
	Type string
}

var (
	// EncodingJSON is for the JSON encoding format
	EncodingJSON Format = "json"
	// EncodingText is for the plaint-text encoding format
	EncodingText Format = "text"
	// EncodingYAML is for the YAML encoding format
	EncodingYAML Format = "yaml"
	// OutputFormats is a list of recognized output formats for CLI commands
	OutputFormats = []Format{
		EncodingText,
		EncodingJSON,
		EncodingYAML,
	}
)

// Format is the output format
type Format string

// Set sets the format value
func (f *Format) Set(v string) error {
	*f = Format(v)
	return nil
}

// String returns the format string representation
func (f *Format) String() string {
	return string(*f)
}
