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

package aws

import (
	"context"

	"github.com/gravitational/hostalarm/lib/alarms"
	"github.com/gravitational/hostalarm/lib/constants"
	"github.com/gravitational/hostalarm/lib/defaults"
	"github.com/gravitational/hostalarm/lib/utils"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/client"
	"github.com/aws/aws-sdk-go/service/cloudwatch"
	"github.com/gravitational/trace"
	"github.com/sirupsen/logrus"
)

// AlarmManagerConfig is the alarm manager configuration
type AlarmManagerConfig struct {
	// Session creates the CloudWatch client if it is not set
	Session client.ConfigProvider
	// CloudWatch is the CloudWatch API client
	CloudWatch CloudWatch
	// FieldLogger is used for logging
	logrus.FieldLogger
}

// CheckAndSetDefaults checks and sets default values
func (c *AlarmManagerConfig) CheckAndSetDefaults() error {
	if c.CloudWatch == nil {
		if c.Session == nil {
			return trace.BadParameter("missing parameter CloudWatch or Session")
		}
		c.CloudWatch = cloudwatch.New(c.Session)
	}
	if c.FieldLogger == nil {
		c.FieldLogger = logrus.WithField(trace.Component, constants.ComponentCloudWatch)
	}
	return nil
}

// AlarmManager creates and removes CloudWatch metric alarms
type AlarmManager struct {
	AlarmManagerConfig
}

// NewAlarmManager returns a new alarm manager
func NewAlarmManager(config AlarmManagerConfig) (*AlarmManager, error) {
	if err := config.CheckAndSetDefaults(); err != nil {
		return nil, trace.Wrap(err)
	}
	return &AlarmManager{AlarmManagerConfig: config}, nil
}

// PutAlarms creates or updates the specified alarms
func (m *AlarmManager) PutAlarms(ctx context.Context, requests []alarms.MetricAlarm) error {
	for _, request := range requests {
		m.Debugf("Creating alarm %v.", request.Name)
		err := utils.CallWithRetry(ctx, func() error {
			_, err := m.CloudWatch.PutMetricAlarmWithContext(ctx, request.PutMetricAlarmInput())
			return err
		})
		if err != nil {
			return trace.Wrap(ConvertError(err), "failed to create alarm %v", request.Name)
		}
	}
	return nil
}

// ListAlarms returns the alarms whose names start with prefix.
// An empty prefix lists all alarms.
func (m *AlarmManager) ListAlarms(ctx context.Context, prefix string) (result []*cloudwatch.MetricAlarm, err error) {
	input := &cloudwatch.DescribeAlarmsInput{
		MaxRecords: aws.Int64(defaults.DescribeAlarmsPageSize),
	}
	if prefix != "" {
		input.AlarmNamePrefix = aws.String(prefix)
	}
	err = utils.CallWithRetry(ctx, func() error {
		result = nil
		return m.CloudWatch.DescribeAlarmsPagesWithContext(ctx, input,
			func(page *cloudwatch.DescribeAlarmsOutput, _ bool) bool {
				result = append(result, page.MetricAlarms...)
				return true
			})
	})
	if err != nil {
		return nil, ConvertError(err)
	}
	return result, nil
}

// DeleteAlarms deletes the alarms with the specified names
func (m *AlarmManager) DeleteAlarms(ctx context.Context, names []string) error {
	for _, batch := range utils.SplitSlice(names, defaults.DeleteAlarmsBatchSize) {
		m.Debugf("Deleting alarms %v.", batch)
		input := &cloudwatch.DeleteAlarmsInput{AlarmNames: aws.StringSlice(batch)}
		err := utils.CallWithRetry(ctx, func() error {
			_, err := m.CloudWatch.DeleteAlarmsWithContext(ctx, input)
			return err
		})
		if err != nil {
			return ConvertError(err)
		}
	}
	return nil
}

// DeleteHostclassAlarms deletes all alarms of the hostclass in the environment
// and returns the names of the deleted alarms.
// Alarms with names that cannot be decoded are left alone.
func (m *AlarmManager) DeleteHostclassAlarms(ctx context.Context, environment, hostclass string) ([]string, error) {
	existing, err := m.ListAlarms(ctx, "")
	if err != nil {
		return nil, trace.Wrap(err)
	}
	var names []string
	for _, alarm := range existing {
		name := aws.StringValue(alarm.AlarmName)
		parts := alarms.DecodeName(name)
		if parts == nil {
			continue
		}
		if parts.Environment == environment && parts.Hostclass == hostclass {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		m.Infof("No alarms to delete for %v in %v.", hostclass, environment)
		return nil, nil
	}
	if err := m.DeleteAlarms(ctx, names); err != nil {
		return nil, trace.Wrap(err)
	}
	return names, nil
}
