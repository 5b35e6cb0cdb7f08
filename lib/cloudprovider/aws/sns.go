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
	"strings"

	"github.com/gravitational/hostalarm/lib/alarms"
	"github.com/gravitational/hostalarm/lib/constants"
	"github.com/gravitational/hostalarm/lib/utils"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/client"
	"github.com/aws/aws-sdk-go/service/sns"
	"github.com/gravitational/trace"
	"github.com/sirupsen/logrus"
)

// NotificationManagerConfig is the notification manager configuration
type NotificationManagerConfig struct {
	// Session creates the SNS client if it is not set
	Session client.ConfigProvider
	// SNS is the SNS API client
	SNS SNS
	// FieldLogger is used for logging
	logrus.FieldLogger
}

// CheckAndSetDefaults checks and sets default values
func (c *NotificationManagerConfig) CheckAndSetDefaults() error {
	if c.SNS == nil {
		if c.Session == nil {
			return trace.BadParameter("missing parameter SNS or Session")
		}
		c.SNS = sns.New(c.Session)
	}
	if c.FieldLogger == nil {
		c.FieldLogger = logrus.WithField(trace.Component, constants.ComponentSNS)
	}
	return nil
}

// NotificationManager maintains the SNS topics alarms notify
// and their subscriptions
type NotificationManager struct {
	NotificationManagerConfig
	// topics maps topic names to ARNs
	topics map[string]string
}

// NewNotificationManager returns a new notification manager
func NewNotificationManager(config NotificationManagerConfig) (*NotificationManager, error) {
	if err := config.CheckAndSetDefaults(); err != nil {
		return nil, trace.Wrap(err)
	}
	return &NotificationManager{
		NotificationManagerConfig: config,
		topics:                    make(map[string]string),
	}, nil
}

// EnsureTopic creates the topic unless it already exists and returns its ARN
func (m *NotificationManager) EnsureTopic(ctx context.Context, name string) (string, error) {
	if arn, ok := m.topics[name]; ok {
		return arn, nil
	}
	var out *sns.CreateTopicOutput
	err := utils.CallWithRetry(ctx, func() (err error) {
		out, err = m.SNS.CreateTopicWithContext(ctx, &sns.CreateTopicInput{
			Name: aws.String(name),
		})
		return err
	})
	if err != nil {
		return "", trace.Wrap(ConvertError(err), "failed to create topic %v", name)
	}
	arn := aws.StringValue(out.TopicArn)
	m.topics[name] = arn
	return arn, nil
}

// Sync makes sure every notification topic exists and is subscribed
// to by all of its endpoints. Existing subscriptions are left alone.
func (m *NotificationManager) Sync(ctx context.Context, notifications []alarms.Notification) error {
	for _, notification := range notifications {
		arn, err := m.EnsureTopic(ctx, notification.Name)
		if err != nil {
			return trace.Wrap(err)
		}
		existing, err := m.subscribedEndpoints(ctx, arn)
		if err != nil {
			return trace.Wrap(err)
		}
		for _, endpoint := range notification.Endpoints {
			if existing[endpoint] {
				continue
			}
			protocol := EndpointProtocol(endpoint)
			m.Infof("Subscribing %v endpoint %v to %v.", protocol, endpoint, notification.Name)
			err := utils.CallWithRetry(ctx, func() error {
				_, err := m.SNS.SubscribeWithContext(ctx, &sns.SubscribeInput{
					TopicArn: aws.String(arn),
					Protocol: aws.String(protocol),
					Endpoint: aws.String(endpoint),
				})
				return err
			})
			if err != nil {
				return trace.Wrap(ConvertError(err), "failed to subscribe %v to %v",
					endpoint, notification.Name)
			}
		}
	}
	return nil
}

func (m *NotificationManager) subscribedEndpoints(ctx context.Context, topicARN string) (endpoints map[string]bool, err error) {
	err = utils.CallWithRetry(ctx, func() error {
		endpoints = make(map[string]bool)
		return m.SNS.ListSubscriptionsByTopicPagesWithContext(ctx,
			&sns.ListSubscriptionsByTopicInput{TopicArn: aws.String(topicARN)},
			func(page *sns.ListSubscriptionsByTopicOutput, _ bool) bool {
				for _, subscription := range page.Subscriptions {
					endpoints[aws.StringValue(subscription.Endpoint)] = true
				}
				return true
			})
	})
	if err != nil {
		return nil, ConvertError(err)
	}
	return endpoints, nil
}

// EndpointProtocol returns the SNS protocol for the subscription endpoint
func EndpointProtocol(endpoint string) string {
	switch {
	case strings.HasPrefix(endpoint, "https://"):
		return constants.ProtocolHTTPS
	case strings.HasPrefix(endpoint, "http://"):
		return constants.ProtocolHTTP
	}
	return constants.ProtocolEmail
}
