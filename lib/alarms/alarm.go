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
	"strconv"
	"strings"

	"github.com/gravitational/hostalarm/lib/constants"
	"github.com/gravitational/hostalarm/lib/utils"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/cloudwatch"
	"github.com/gravitational/trace"
)

// Alarm is a single resolved and validated alarm definition.
// Each threshold side of an alarm config section produces its own Alarm.
type Alarm struct {
	// Team owns the alarm
	Team string `json:"team"`
	// Environment is the environment the alarm belongs to
	Environment string `json:"environment"`
	// Hostclass is the hostclass the alarm monitors
	Hostclass string `json:"hostclass"`
	// Namespace is the CloudWatch namespace of the metric
	Namespace string `json:"namespace"`
	// MetricName is the CloudWatch metric name
	MetricName string `json:"metric_name"`
	// Duration is the number of periods the threshold must be breached for
	Duration int64 `json:"duration"`
	// Period is the metric evaluation period in seconds
	Period int64 `json:"period"`
	// Statistic is the metric statistic, e.g. Average
	Statistic string `json:"statistic"`
	// CustomMetric is set for metrics published by the hosts themselves
	CustomMetric bool `json:"custom_metric"`
	// LogPatternMetric is set for metrics extracted from log files
	LogPatternMetric bool `json:"log_pattern_metric"`
	// AutoscalingGroupName is the autoscaling group of the hostclass
	AutoscalingGroupName string `json:"autoscaling_group_name,omitempty"`
	// ESDomainName is the Elasticsearch Service domain name
	ESDomainName string `json:"es_domain_name,omitempty"`
	// ESClientID is the account that owns the Elasticsearch Service domain
	ESClientID string `json:"es_client_id,omitempty"`
	// LoadBalancerID is the load balancer name for AWS/ELB alarms
	LoadBalancerID string `json:"load_balancer_id,omitempty"`
	// Level is the notification level, critical or info
	Level string `json:"level"`
	// Threshold is the alarm threshold
	Threshold int64 `json:"threshold"`
	// ThresholdType is max or min
	ThresholdType string `json:"threshold_type"`
}

// newAlarm validates the resolved options and creates the alarm
// for the given threshold side
func newAlarm(options Options, threshold constants.ThresholdOption) (*Alarm, error) {
	alarm := &Alarm{
		Team:                 options[optionTeam],
		Environment:          options[optionEnvironment],
		Hostclass:            options[optionHostclass],
		Namespace:            options[optionNamespace],
		MetricName:           options[optionMetricName],
		CustomMetric:         options.Bool(optionCustomMetric),
		LogPatternMetric:     options.Bool(optionLogPatternMetric),
		AutoscalingGroupName: options[optionAutoscalingGroupName],
		ESDomainName:         options[optionESDomainName],
		ESClientID:           options[optionESClientID],
		ThresholdType:        threshold.Type,
	}
	var err error
	if alarm.Duration, err = positiveInt(options, optionDuration); err != nil {
		return nil, trace.Wrap(err)
	}
	if alarm.Period, err = positiveInt(options, optionPeriod); err != nil {
		return nil, trace.Wrap(err)
	}
	if alarm.Statistic, err = requireOption(options, optionStatistic); err != nil {
		return nil, trace.Wrap(err)
	}
	if !utils.StringInSlice(cloudwatchStatistics, alarm.Statistic) {
		return nil, configErrorf("statistic for %v must be one of %v, got %q",
			alarm.MetricName, cloudwatchStatistics, alarm.Statistic)
	}
	alarm.Level = options[optionLevel]
	if !utils.StringInSlice(constants.NotificationLevels, alarm.Level) {
		return nil, configErrorf("level for %v must be one of %v, got %q",
			alarm.MetricName, constants.NotificationLevels, alarm.Level)
	}
	if alarm.Threshold, err = parseThreshold(threshold.Key, options); err != nil {
		return nil, trace.Wrap(err)
	}
	return alarm, nil
}

// Name returns the alarm name: team_environment_hostclass_metric_thresholdtype
func (a Alarm) Name() string {
	return EncodeName(a.Team, a.Environment, a.Hostclass, a.MetricName, a.ThresholdType)
}

// NotificationTopic returns the name of the topic the alarm routes to
func (a Alarm) NotificationTopic() string {
	return strings.Join([]string{a.Team, a.Environment, a.Level}, "_")
}

// Dimensions returns the metric dimensions the alarm watches
func (a Alarm) Dimensions() map[string]string {
	// metrics extracted from logs have no dimensions
	if a.LogPatternMetric {
		return map[string]string{}
	}
	switch a.Namespace {
	case constants.NamespaceRDS:
		// underscores are not allowed in RDS instance identifiers
		return map[string]string{
			constants.DimensionDBInstanceIdentifier: a.Environment + "-" + a.Hostclass,
		}
	case constants.NamespaceELB:
		return map[string]string{
			constants.DimensionLoadBalancerName: a.LoadBalancerID,
		}
	case constants.NamespaceES:
		return map[string]string{
			constants.DimensionDomainName: a.ESDomainName,
			constants.DimensionClientID:   a.ESClientID,
		}
	}
	if a.CustomMetric {
		return map[string]string{
			constants.DimensionEnvHostclass: a.Environment + "_" + a.Hostclass,
		}
	}
	return map[string]string{
		constants.DimensionAutoScalingGroupName: a.AutoscalingGroupName,
	}
}

// String returns the alarm description
func (a Alarm) String() string {
	return fmt.Sprintf("Alarm(%v, threshold=%v)", a.Name(), a.Threshold)
}

// MetricAlarm returns the alarm creation request that sends both the alarm
// and the OK transitions to the given action ARN
func (a Alarm) MetricAlarm(actionARN string) MetricAlarm {
	comparison := ">"
	if a.ThresholdType == constants.ThresholdMin {
		comparison = "<"
	}
	return MetricAlarm{
		AlarmActions:      []string{actionARN},
		OKActions:         []string{actionARN},
		Comparison:        comparison,
		Dimensions:        a.Dimensions(),
		EvaluationPeriods: a.Duration,
		Metric:            a.MetricName,
		Name:              a.Name(),
		Namespace:         a.Namespace,
		Period:            a.Period,
		Statistic:         a.Statistic,
		Threshold:         a.Threshold,
	}
}

// MetricAlarm is the alarm creation request
type MetricAlarm struct {
	// AlarmActions are notified when the alarm fires
	AlarmActions []string `json:"alarm_actions"`
	// OKActions are notified when the alarm clears
	OKActions []string `json:"ok_actions"`
	// Comparison is > for max alarms and < for min alarms
	Comparison string `json:"comparison"`
	// Dimensions identify the monitored resource
	Dimensions map[string]string `json:"dimensions"`
	// EvaluationPeriods is the number of periods to evaluate
	EvaluationPeriods int64 `json:"evaluation_periods"`
	// Metric is the metric name
	Metric string `json:"metric"`
	// Name is the alarm name
	Name string `json:"name"`
	// Namespace is the metric namespace
	Namespace string `json:"namespace"`
	// Period is the evaluation period in seconds
	Period int64 `json:"period"`
	// Statistic is the metric statistic
	Statistic string `json:"statistic"`
	// Threshold is the alarm threshold
	Threshold int64 `json:"threshold"`
}

// PutMetricAlarmInput converts the request to the CloudWatch API input
func (m MetricAlarm) PutMetricAlarmInput() *cloudwatch.PutMetricAlarmInput {
	operator := cloudwatch.ComparisonOperatorGreaterThanThreshold
	if m.Comparison == "<" {
		operator = cloudwatch.ComparisonOperatorLessThanThreshold
	}
	names := make([]string, 0, len(m.Dimensions))
	for name := range m.Dimensions {
		names = append(names, name)
	}
	sort.Strings(names)
	dimensions := make([]*cloudwatch.Dimension, 0, len(names))
	for _, name := range names {
		dimensions = append(dimensions, &cloudwatch.Dimension{
			Name:  aws.String(name),
			Value: aws.String(m.Dimensions[name]),
		})
	}
	return &cloudwatch.PutMetricAlarmInput{
		AlarmName:          aws.String(m.Name),
		AlarmActions:       aws.StringSlice(m.AlarmActions),
		OKActions:          aws.StringSlice(m.OKActions),
		ComparisonOperator: aws.String(operator),
		Dimensions:         dimensions,
		EvaluationPeriods:  aws.Int64(m.EvaluationPeriods),
		MetricName:         aws.String(m.Metric),
		Namespace:          aws.String(m.Namespace),
		Period:             aws.Int64(m.Period),
		Statistic:          aws.String(m.Statistic),
		Threshold:          aws.Float64(float64(m.Threshold)),
	}
}

// SortByName sorts the alarms by name
func SortByName(alarms []Alarm) {
	sort.Slice(alarms, func(i, j int) bool {
		return alarms[i].Name() < alarms[j].Name()
	})
}

var cloudwatchStatistics = []string{
	cloudwatch.StatisticAverage,
	cloudwatch.StatisticSum,
	cloudwatch.StatisticMaximum,
	cloudwatch.StatisticMinimum,
	cloudwatch.StatisticSampleCount,
}

func positiveInt(options Options, key string) (int64, error) {
	value, err := requireOption(options, key)
	if err != nil {
		return 0, trace.Wrap(err)
	}
	n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil || n <= 0 {
		return 0, configErrorf("%v for %v must be a positive integer, got %q",
			key, options[optionMetricName], value)
	}
	return n, nil
}
