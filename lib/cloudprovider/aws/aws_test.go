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
	"fmt"
	"sort"
	"testing"

	"github.com/gravitational/hostalarm/lib/alarms"
	"github.com/gravitational/hostalarm/lib/compare"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/cloudwatch"
	"github.com/aws/aws-sdk-go/service/elasticsearchservice"
	"github.com/aws/aws-sdk-go/service/sns"
	"github.com/gravitational/trace"
	"gopkg.in/check.v1"
)

func TestAWS(t *testing.T) { check.TestingT(t) }

type AWSSuite struct{}

var _ = check.Suite(&AWSSuite{})

func (s *AWSSuite) TestPutAlarms(c *check.C) {
	client := newMockCloudWatch()
	manager, err := NewAlarmManager(AlarmManagerConfig{CloudWatch: client})
	c.Assert(err, check.IsNil)

	alarm := alarms.Alarm{
		Team:                 "astro",
		Environment:          "ci",
		Hostclass:            "mhcweb",
		Namespace:            "AWS/EC2",
		MetricName:           "CPUUtilization",
		Duration:             2,
		Period:               60,
		Statistic:            "Average",
		AutoscalingGroupName: "ci_mhcweb_1",
		Level:                "critical",
		Threshold:            90,
		ThresholdType:        "max",
	}
	err = manager.PutAlarms(context.TODO(), []alarms.MetricAlarm{alarm.MetricAlarm("arn:topic")})
	c.Assert(err, check.IsNil)

	input, ok := client.alarms["astro_ci_mhcweb_CPUUtilization_max"]
	c.Assert(ok, check.Equals, true)
	c.Assert(aws.StringValue(input.ComparisonOperator), check.Equals,
		cloudwatch.ComparisonOperatorGreaterThanThreshold)
	c.Assert(aws.StringValueSlice(input.AlarmActions), check.DeepEquals, []string{"arn:topic"})
	c.Assert(aws.StringValueSlice(input.OKActions), check.DeepEquals, []string{"arn:topic"})
	c.Assert(aws.Float64Value(input.Threshold), check.Equals, float64(90))
	c.Assert(input.Dimensions, check.HasLen, 1)
	c.Assert(aws.StringValue(input.Dimensions[0].Value), check.Equals, "ci_mhcweb_1")
}

func (s *AWSSuite) TestListAlarmsByPrefix(c *check.C) {
	client := newMockCloudWatch("astro_ci_mhcweb_CPUUtilization_max", "ops_ci_mhcweb_CPUUtilization_max")
	manager, err := NewAlarmManager(AlarmManagerConfig{CloudWatch: client})
	c.Assert(err, check.IsNil)

	result, err := manager.ListAlarms(context.TODO(), "astro_")
	c.Assert(err, check.IsNil)
	c.Assert(result, check.HasLen, 1)
	c.Assert(aws.StringValue(result[0].AlarmName), check.Equals, "astro_ci_mhcweb_CPUUtilization_max")
}

func (s *AWSSuite) TestDeleteAlarmsInBatches(c *check.C) {
	var names []string
	for i := 0; i < 250; i++ {
		names = append(names, fmt.Sprintf("astro_ci_mhcweb_metric%v_max", i))
	}
	client := newMockCloudWatch(names...)
	manager, err := NewAlarmManager(AlarmManagerConfig{CloudWatch: client})
	c.Assert(err, check.IsNil)

	c.Assert(manager.DeleteAlarms(context.TODO(), names), check.IsNil)
	c.Assert(client.deleteBatches, check.DeepEquals, []int{100, 100, 50})
	c.Assert(client.alarms, check.HasLen, 0)
}

func (s *AWSSuite) TestDeleteHostclassAlarms(c *check.C) {
	client := newMockCloudWatch(
		"astro_ci_mhcweb_CPUUtilization_max",
		"astro_ci_mhcweb_CPUUtilization_min",
		"astro_prod_mhcweb_CPUUtilization_max",
		"astro_ci_mhcapi_CPUUtilization_max",
		"unparsable",
	)
	manager, err := NewAlarmManager(AlarmManagerConfig{CloudWatch: client})
	c.Assert(err, check.IsNil)

	deleted, err := manager.DeleteHostclassAlarms(context.TODO(), "ci", "mhcweb")
	c.Assert(err, check.IsNil)
	c.Assert(deleted, compare.UnorderedEquals, []string{
		"astro_ci_mhcweb_CPUUtilization_max",
		"astro_ci_mhcweb_CPUUtilization_min",
	})
	c.Assert(client.names(), check.DeepEquals, []string{
		"astro_ci_mhcapi_CPUUtilization_max",
		"astro_prod_mhcweb_CPUUtilization_max",
		"unparsable",
	})
}

func (s *AWSSuite) TestSyncSubscribesMissingEndpoints(c *check.C) {
	client := newMockSNS()
	client.subscriptions["arn:aws:sns:astro_ci_critical"] = []string{"ops@example.com"}
	manager, err := NewNotificationManager(NotificationManagerConfig{SNS: client})
	c.Assert(err, check.IsNil)

	err = manager.Sync(context.TODO(), []alarms.Notification{
		{
			Name: "astro_ci_critical",
			Endpoints: []string{
				"ops@example.com",
				"https://hooks.example.com/alarm",
				"http://pager.example.com",
			},
		},
	})
	c.Assert(err, check.IsNil)
	c.Assert(client.subscribed, check.DeepEquals, []string{
		"https https://hooks.example.com/alarm",
		"http http://pager.example.com",
	})
	c.Assert(client.created, check.DeepEquals, []string{"astro_ci_critical"})

	arn, err := manager.EnsureTopic(context.TODO(), "astro_ci_critical")
	c.Assert(err, check.IsNil)
	c.Assert(arn, check.Equals, "arn:aws:sns:astro_ci_critical")
	c.Assert(client.created, check.HasLen, 1, check.Commentf("topic ARN should be cached"))
}

func (s *AWSSuite) TestEndpointProtocol(c *check.C) {
	c.Assert(EndpointProtocol("https://example.com"), check.Equals, "https")
	c.Assert(EndpointProtocol("http://example.com"), check.Equals, "http")
	c.Assert(EndpointProtocol("ops@example.com"), check.Equals, "email")
	c.Assert(EndpointProtocol("httpbin"), check.Equals, "email")
}

func (s *AWSSuite) TestElasticsearch(c *check.C) {
	es := &Elasticsearch{
		Environment: "ci",
		Client: &mockElasticsearch{
			domains: map[string]string{"es-logs-ci": "123456789012/es-logs-ci"},
		},
	}
	c.Assert(es.GetDomainName("logs"), check.Equals, "es-logs-ci")

	clientID, err := es.GetClientID(context.TODO(), "es-logs-ci")
	c.Assert(err, check.IsNil)
	c.Assert(clientID, check.Equals, "123456789012")

	_, err = es.GetClientID(context.TODO(), "es-missing-ci")
	c.Assert(trace.IsNotFound(err), check.Equals, true)
}

func (s *AWSSuite) TestConvertError(c *check.C) {
	c.Assert(ConvertError(nil), check.IsNil)
	c.Assert(trace.IsNotFound(ConvertError(
		awserr.New(sns.ErrCodeNotFoundException, "no topic", nil))), check.Equals, true)
	c.Assert(trace.IsLimitExceeded(ConvertError(
		awserr.New(cloudwatch.ErrCodeLimitExceededFault, "too many", nil))), check.Equals, true)
	c.Assert(trace.IsBadParameter(ConvertError(
		awserr.New(elasticsearchservice.ErrCodeValidationException, "bad", nil))), check.Equals, true)
	c.Assert(trace.IsAccessDenied(ConvertError(
		awserr.New(sns.ErrCodeAuthorizationErrorException, "denied", nil))), check.Equals, true)
}

func newMockCloudWatch(names ...string) *mockCloudWatch {
	m := &mockCloudWatch{alarms: make(map[string]*cloudwatch.PutMetricAlarmInput)}
	for _, name := range names {
		m.alarms[name] = &cloudwatch.PutMetricAlarmInput{AlarmName: aws.String(name)}
	}
	return m
}

type mockCloudWatch struct {
	alarms        map[string]*cloudwatch.PutMetricAlarmInput
	deleteBatches []int
}

func (m *mockCloudWatch) names() []string {
	var names []string
	for name := range m.alarms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (m *mockCloudWatch) PutMetricAlarmWithContext(ctx aws.Context, input *cloudwatch.PutMetricAlarmInput, opts ...request.Option) (*cloudwatch.PutMetricAlarmOutput, error) {
	m.alarms[aws.StringValue(input.AlarmName)] = input
	return &cloudwatch.PutMetricAlarmOutput{}, nil
}

func (m *mockCloudWatch) DescribeAlarmsPagesWithContext(ctx aws.Context, input *cloudwatch.DescribeAlarmsInput, fn func(*cloudwatch.DescribeAlarmsOutput, bool) bool, opts ...request.Option) error {
	prefix := aws.StringValue(input.AlarmNamePrefix)
	pageSize := int(aws.Int64Value(input.MaxRecords))
	var page []*cloudwatch.MetricAlarm
	names := m.names()
	for i, name := range names {
		if len(name) < len(prefix) || name[:len(prefix)] != prefix {
			continue
		}
		page = append(page, &cloudwatch.MetricAlarm{AlarmName: aws.String(name)})
		if len(page) == pageSize && i < len(names)-1 {
			if !fn(&cloudwatch.DescribeAlarmsOutput{MetricAlarms: page}, false) {
				return nil
			}
			page = nil
		}
	}
	fn(&cloudwatch.DescribeAlarmsOutput{MetricAlarms: page}, true)
	return nil
}

func (m *mockCloudWatch) DeleteAlarmsWithContext(ctx aws.Context, input *cloudwatch.DeleteAlarmsInput, opts ...request.Option) (*cloudwatch.DeleteAlarmsOutput, error) {
	m.deleteBatches = append(m.deleteBatches, len(input.AlarmNames))
	for _, name := range input.AlarmNames {
		delete(m.alarms, aws.StringValue(name))
	}
	return &cloudwatch.DeleteAlarmsOutput{}, nil
}

func newMockSNS() *mockSNS {
	return &mockSNS{subscriptions: make(map[string][]string)}
}

type mockSNS struct {
	created       []string
	subscriptions map[string][]string
	subscribed    []string
}

func (m *mockSNS) CreateTopicWithContext(ctx aws.Context, input *sns.CreateTopicInput, opts ...request.Option) (*sns.CreateTopicOutput, error) {
	m.created = append(m.created, aws.StringValue(input.Name))
	return &sns.CreateTopicOutput{TopicArn: aws.String("arn:aws:sns:" + aws.StringValue(input.Name))}, nil
}

func (m *mockSNS) ListSubscriptionsByTopicPagesWithContext(ctx aws.Context, input *sns.ListSubscriptionsByTopicInput, fn func(*sns.ListSubscriptionsByTopicOutput, bool) bool, opts ...request.Option) error {
	var subscriptions []*sns.Subscription
	for _, endpoint := range m.subscriptions[aws.StringValue(input.TopicArn)] {
		subscriptions = append(subscriptions, &sns.Subscription{Endpoint: aws.String(endpoint)})
	}
	fn(&sns.ListSubscriptionsByTopicOutput{Subscriptions: subscriptions}, true)
	return nil
}

func (m *mockSNS) SubscribeWithContext(ctx aws.Context, input *sns.SubscribeInput, opts ...request.Option) (*sns.SubscribeOutput, error) {
	m.subscribed = append(m.subscribed,
		aws.StringValue(input.Protocol)+" "+aws.StringValue(input.Endpoint))
	return &sns.SubscribeOutput{}, nil
}

type mockElasticsearch struct {
	domains map[string]string
}

func (m *mockElasticsearch) DescribeElasticsearchDomainWithContext(ctx aws.Context, input *elasticsearchservice.DescribeElasticsearchDomainInput, opts ...request.Option) (*elasticsearchservice.DescribeElasticsearchDomainOutput, error) {
	id, ok := m.domains[aws.StringValue(input.DomainName)]
	if !ok {
		return nil, awserr.New(elasticsearchservice.ErrCodeResourceNotFoundException,
			"domain not found", nil)
	}
	return &elasticsearchservice.DescribeElasticsearchDomainOutput{
		DomainStatus: &elasticsearchservice.ElasticsearchDomainStatus{
			DomainId: aws.String(id),
		},
	}, nil
}
