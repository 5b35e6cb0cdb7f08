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
	"sort"
	"time"

	"github.com/gravitational/hostalarm/lib/alarms"
	"github.com/gravitational/hostalarm/lib/constants"
	"github.com/gravitational/hostalarm/lib/utils"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/client"
	"github.com/aws/aws-sdk-go/service/autoscaling"
	"github.com/gravitational/trace"
	"github.com/sirupsen/logrus"
)

// Autoscaler finds the autoscaling groups of hostclasses. Groups are matched
// by their environment and hostclass tags.
type Autoscaler struct {
	// Config is Autoscaler config
	Config
}

// Config is autoscaler config
type Config struct {
	// Environment is the environment name groups are tagged with
	Environment string
	// Session creates the AutoScaling client if it is not set
	Session client.ConfigProvider
	// AutoScaling is a client for the AWS AutoScaling service
	AutoScaling AutoScaling
	// FieldLogger is used for logging
	logrus.FieldLogger
}

// CheckAndSetDefaults checks and sets default values
func (cfg *Config) CheckAndSetDefaults() error {
	if cfg.Environment == "" {
		return trace.BadParameter("missing parameter Environment")
	}
	if cfg.AutoScaling == nil {
		if cfg.Session == nil {
			return trace.BadParameter("missing parameter AutoScaling or Session")
		}
		cfg.AutoScaling = autoscaling.New(cfg.Session)
	}
	if cfg.FieldLogger == nil {
		cfg.FieldLogger = logrus.WithFields(logrus.Fields{
			trace.Component: constants.ComponentAutoscale,
			"env":           cfg.Environment,
		})
	}
	return nil
}

// New returns new instance of AWS autoscaler
func New(cfg Config) (*Autoscaler, error) {
	if err := cfg.CheckAndSetDefaults(); err != nil {
		return nil, trace.Wrap(err)
	}
	return &Autoscaler{Config: cfg}, nil
}

// GetExistingGroup returns the autoscaling group of the hostclass.
// If the hostclass has several groups, for example during a blue/green
// deployment, the most recently created one is returned.
func (a *Autoscaler) GetExistingGroup(ctx context.Context, hostclass string) (*alarms.Group, error) {
	a.Debugf("GetExistingGroup(%v)", hostclass)
	groups, err := a.ListGroups(ctx, hostclass)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	if len(groups) == 0 {
		return nil, trace.NotFound("no autoscaling group for hostclass %v in environment %v",
			hostclass, a.Environment)
	}
	return &alarms.Group{Name: aws.StringValue(groups[0].AutoScalingGroupName)}, nil
}

// ListGroups returns the autoscaling groups of the environment, newest first.
// If hostclass is not empty, only groups of that hostclass are returned.
func (a *Autoscaler) ListGroups(ctx context.Context, hostclass string) (groups []*autoscaling.Group, err error) {
	err = utils.CallWithRetry(ctx, func() error {
		groups = nil
		return a.AutoScaling.DescribeAutoScalingGroupsPagesWithContext(ctx,
			&autoscaling.DescribeAutoScalingGroupsInput{},
			func(page *autoscaling.DescribeAutoScalingGroupsOutput, _ bool) bool {
				for _, group := range page.AutoScalingGroups {
					if tagValue(group.Tags, constants.TagEnvironment) != a.Environment {
						continue
					}
					if hostclass != "" && tagValue(group.Tags, constants.TagHostclass) != hostclass {
						continue
					}
					groups = append(groups, group)
				}
				return true
			})
	})
	if err != nil {
		return nil, ConvertError(err)
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return createdTime(groups[i]).After(createdTime(groups[j]))
	})
	return groups, nil
}

// ConvertError converts errors specific to AWS to trace-compatible error
func ConvertError(err error) error {
	if err == nil {
		return nil
	}
	if awsErr, ok := trace.Unwrap(err).(interface{ Code() string }); ok {
		switch awsErr.Code() {
		case autoscaling.ErrCodeResourceContentionFault:
			return trace.CompareFailed(err.Error())
		case autoscaling.ErrCodeInvalidNextToken:
			return trace.BadParameter(err.Error())
		}
	}
	return trace.Wrap(err)
}

func tagValue(tags []*autoscaling.TagDescription, key string) string {
	for _, tag := range tags {
		if aws.StringValue(tag.Key) == key {
			return aws.StringValue(tag.Value)
		}
	}
	return ""
}

func createdTime(group *autoscaling.Group) time.Time {
	return aws.TimeValue(group.CreatedTime)
}
