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
	"context"

	"github.com/gravitational/hostalarm/lib/compare"
	"github.com/gravitational/hostalarm/lib/config"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/cloudwatch"
	"github.com/gravitational/trace"
	"gopkg.in/check.v1"
)

type ResolverSuite struct{}

var _ = check.Suite(&ResolverSuite{})

const testConfig = `
[defaults]
duration = 2
period = 60
statistic = Average
custom_metric = false
level = critical

[notifications]
astro_ci_critical = ops@example.com,https://hooks.example.com/alarm
astro_ci_info = info@example.com
astro_prod_critical = prod@example.com
astro_prod_warning = prod@example.com

[astro.AWS/EC2.CPUUtilization]
threshold_max = 90

[astro.AWS/EC2.CPUUtilization.mhcapi]
threshold_max = 70
threshold_min = 5
level = info

[astro.Custom.MemoryUsage]
custom_metric = true
threshold_max = 80

[astro.AWS/RDS.FreeStorageSpace.mhcdb]
threshold_min = 1000
statistic = Minimum

[astro.AWS/ELB.HTTPCode_Backend_5XX.mhcweb]
threshold_max = 10
statistic = Sum

[astro.LogPattern.ErrorCount.mhcweb]
log_pattern_metric = true
threshold_max = 0
statistic = Sum

[astro.AWS/ES.ClusterStatus.red.mhcsearch]
threshold_max = 0
statistic = Maximum
`

func (s *ResolverSuite) TestHostclassInheritsSharedSections(c *check.C) {
	resolver, autoscale := newTestResolver(c, testConfig)

	alarms, err := resolver.Alarms(context.TODO(), "mhcweb", "")
	c.Assert(err, check.IsNil)
	SortByName(alarms)
	c.Assert(alarmNames(alarms), check.DeepEquals, []string{
		"astro_ci_mhcweb_CPUUtilization_max",
		"astro_ci_mhcweb_HTTPCode_Backend_5XX_max",
		"astro_ci_mhcweb_MemoryUsage_max",
		"astro_ci_mhcweb_mhcweb-ErrorCount_max",
	})

	cpu := alarms[0]
	c.Assert(cpu, compare.DeepEquals, Alarm{
		Team:                 "astro",
		Environment:          "ci",
		Hostclass:            "mhcweb",
		Namespace:            "AWS/EC2",
		MetricName:           "CPUUtilization",
		Duration:             2,
		Period:               60,
		Statistic:            "Average",
		AutoscalingGroupName: "ci_mhcweb_2",
		Level:                "critical",
		Threshold:            90,
		ThresholdType:        "max",
	})
	c.Assert(cpu.Dimensions(), check.DeepEquals, map[string]string{
		"AutoScalingGroupName": "ci_mhcweb_2",
	})
	c.Assert(cpu.NotificationTopic(), check.Equals, "astro_ci_critical")

	memory := alarms[2]
	c.Assert(memory.CustomMetric, check.Equals, true)
	c.Assert(memory.Dimensions(), check.DeepEquals, map[string]string{"env_hostclass": "ci_mhcweb"})

	elb := alarms[1]
	c.Assert(elb.LoadBalancerID, check.Equals, "elb-ci-mhcweb")
	c.Assert(elb.Dimensions(), check.DeepEquals, map[string]string{"LoadBalancerName": "elb-ci-mhcweb"})

	logs := alarms[3]
	c.Assert(logs.Namespace, check.Equals, "LogPattern/ci")
	c.Assert(logs.MetricName, check.Equals, "mhcweb-ErrorCount")
	c.Assert(logs.Threshold, check.Equals, int64(0))
	c.Assert(logs.Dimensions(), check.DeepEquals, map[string]string{})

	c.Assert(autoscale.calls, check.DeepEquals, []string{"mhcweb"})
}

func (s *ResolverSuite) TestHostclassSectionShadowsSharedSection(c *check.C) {
	resolver, _ := newTestResolver(c, testConfig)

	alarms, err := resolver.Alarms(context.TODO(), "mhcapi", "ci_mhcapi_1")
	c.Assert(err, check.IsNil)
	SortByName(alarms)
	c.Assert(alarmNames(alarms), check.DeepEquals, []string{
		"astro_ci_mhcapi_CPUUtilization_max",
		"astro_ci_mhcapi_CPUUtilization_min",
		"astro_ci_mhcapi_MemoryUsage_max",
	})
	c.Assert(alarms[0].Threshold, check.Equals, int64(70))
	c.Assert(alarms[0].Level, check.Equals, "info")
	c.Assert(alarms[1].Threshold, check.Equals, int64(5))
	c.Assert(alarms[1].ThresholdType, check.Equals, "min")
	c.Assert(alarms[0].NotificationTopic(), check.Equals, "astro_ci_info")
}

func (s *ResolverSuite) TestSharedSectionOptionsAreNilWhenShadowed(c *check.C) {
	resolver, _ := newTestResolver(c, testConfig)
	section := Section{Team: "astro", Namespace: "AWS/EC2", MetricName: "CPUUtilization"}

	options, err := resolver.SectionOptions(context.TODO(), section, "mhcapi", false, "asg")
	c.Assert(err, check.IsNil)
	c.Assert(options, check.IsNil)

	options, err = resolver.SectionOptions(context.TODO(), section, "mhcweb", false, "asg")
	c.Assert(err, check.IsNil)
	c.Assert(options["threshold_max"], check.Equals, "90")
	c.Assert(options["autoscaling_group_name"], check.Equals, "asg")
}

func (s *ResolverSuite) TestMergePrecedence(c *check.C) {
	resolver, _ := newTestResolver(c, `
[defaults]
duration = 2
period = 60
statistic = Average
level = critical
hostclass = fromdefaults
autoscaling_group_name = fromdefaults

[astro.AWS/EC2.CPUUtilization]
period = 300
threshold_max = 90
team = fromparent

[astro.AWS/EC2.CPUUtilization.mhcweb]
duration = 5
`)
	section := Section{Team: "astro", Namespace: "AWS/EC2", MetricName: "CPUUtilization", Hostclass: "mhcweb"}
	options, err := resolver.SectionOptions(context.TODO(), section, "mhcweb", true, "")
	c.Assert(err, check.IsNil)
	c.Assert(options, compare.DeepEquals, Options{
		"duration":               "5",
		"period":                 "300",
		"statistic":              "Average",
		"level":                  "critical",
		"threshold_max":          "90",
		"team":                   "astro",
		"namespace":              "AWS/EC2",
		"metric_name":            "CPUUtilization",
		"hostclass":              "mhcweb",
		"environment":            "ci",
		"autoscaling_group_name": "ci_mhcweb_2",
	})
}

func (s *ResolverSuite) TestHostclassSectionWithoutSharedSection(c *check.C) {
	resolver, _ := newTestResolver(c, testConfig)

	alarms, err := resolver.Alarms(context.TODO(), "mhcdb", "ci_mhcdb_1")
	c.Assert(err, check.IsNil)
	SortByName(alarms)
	c.Assert(alarmNames(alarms), check.DeepEquals, []string{
		"astro_ci_mhcdb_CPUUtilization_max",
		"astro_ci_mhcdb_FreeStorageSpace_min",
		"astro_ci_mhcdb_MemoryUsage_max",
	})
	rds := alarms[1]
	c.Assert(rds.Statistic, check.Equals, "Minimum")
	c.Assert(rds.Dimensions(), check.DeepEquals, map[string]string{
		"DBInstanceIdentifier": "ci-mhcdb",
	})
}

func (s *ResolverSuite) TestSearchDomainAlarms(c *check.C) {
	resolver, _ := newTestResolver(c, testConfig)

	alarms, err := resolver.Alarms(context.TODO(), "mhcsearch", "ci_mhcsearch_1")
	c.Assert(err, check.IsNil)
	SortByName(alarms)
	c.Assert(alarmNames(alarms), check.DeepEquals, []string{
		"astro_ci_mhcsearch_CPUUtilization_max",
		"astro_ci_mhcsearch_MemoryUsage_max",
	}, check.Commentf("AWS/ES sections are skipped without a domain lookup"))

	search := &fakeSearch{clientID: "123456789012"}
	resolver.Search = search
	alarms, err = resolver.Alarms(context.TODO(), "mhcsearch", "ci_mhcsearch_1")
	c.Assert(err, check.IsNil)
	SortByName(alarms)
	c.Assert(alarms, check.HasLen, 3)
	es := alarms[1]
	c.Assert(es.Name(), check.Equals, "astro_ci_mhcsearch_ClusterStatus.red_max")
	c.Assert(es.Dimensions(), check.DeepEquals, map[string]string{
		"DomainName": "es-mhcsearch-ci",
		"ClientId":   "123456789012",
	})
	c.Assert(search.domains, check.DeepEquals, []string{"es-mhcsearch-ci"})
}

func (s *ResolverSuite) TestExplicitAutoscalingGroupSkipsLookup(c *check.C) {
	resolver, autoscale := newTestResolver(c, testConfig)

	alarms, err := resolver.Alarms(context.TODO(), "mhcweb", "explicit_asg")
	c.Assert(err, check.IsNil)
	SortByName(alarms)
	c.Assert(alarms[0].AutoscalingGroupName, check.Equals, "explicit_asg")
	c.Assert(autoscale.calls, check.HasLen, 0)
}

func (s *ResolverSuite) TestAutoscaleLookupIsCreatedOnce(c *check.C) {
	store, err := config.Parse([]byte(`
[defaults]
duration = 1
period = 60
statistic = Average
level = critical

[astro.AWS/EC2.CPUUtilization]
threshold_max = 90

[astro.AWS/EC2.StatusCheckFailed]
threshold_max = 0
`))
	c.Assert(err, check.IsNil)
	autoscale := &fakeAutoscale{groups: map[string]string{"mhcweb": "ci_mhcweb_2"}}
	created := 0
	resolver, err := New(Config{
		Environment: "ci",
		Store:       store,
		NewAutoscale: func() (AutoscaleLookup, error) {
			created++
			return autoscale, nil
		},
	})
	c.Assert(err, check.IsNil)

	for i := 0; i < 2; i++ {
		alarms, err := resolver.Alarms(context.TODO(), "mhcweb", "")
		c.Assert(err, check.IsNil)
		c.Assert(alarms, check.HasLen, 2)
	}
	c.Assert(created, check.Equals, 1)
	c.Assert(autoscale.calls, check.HasLen, 4)
}

func (s *ResolverSuite) TestLookupErrorsPropagate(c *check.C) {
	resolver, _ := newTestResolver(c, testConfig)

	_, err := resolver.Alarms(context.TODO(), "mhcunknown", "")
	c.Assert(trace.IsNotFound(err), check.Equals, true)
	c.Assert(IsConfigError(err), check.Equals, false)
}

func (s *ResolverSuite) TestInvalidThreshold(c *check.C) {
	for _, threshold := range []string{"9.5", "-1", "ninety", "1e3"} {
		resolver, _ := newTestResolver(c, `
[defaults]
duration = 1
period = 60
statistic = Average
level = critical

[astro.Custom.QueueDepth]
threshold_max = `+threshold+`
`)
		_, err := resolver.Alarms(context.TODO(), "mhcweb", "")
		c.Assert(IsConfigError(err), check.Equals, true, check.Commentf(threshold))
		c.Assert(trace.IsBadParameter(err), check.Equals, true, check.Commentf(threshold))
	}
}

func (s *ResolverSuite) TestMalformedSectionFailsResolution(c *check.C) {
	resolver, _ := newTestResolver(c, testConfig+`
[astro.Custom]
threshold_max = 1
`)
	_, err := resolver.Alarms(context.TODO(), "mhcweb", "asg")
	c.Assert(IsConfigError(err), check.Equals, true)
}

func (s *ResolverSuite) TestInvalidOptions(c *check.C) {
	var testCases = []struct {
		options string
		comment string
	}{
		{options: "period = 60\nstatistic = Average\nlevel = critical", comment: "missing duration"},
		{options: "duration = 0\nperiod = 60\nstatistic = Average\nlevel = critical", comment: "zero duration"},
		{options: "duration = 1\nperiod = 60\nstatistic = Median\nlevel = critical", comment: "unknown statistic"},
		{options: "duration = 1\nperiod = 60\nstatistic = Average\nlevel = warning", comment: "unknown level"},
	}
	for _, tc := range testCases {
		resolver, _ := newTestResolver(c, "[astro.Custom.QueueDepth]\nthreshold_max = 1\n"+tc.options+"\n")
		_, err := resolver.Alarms(context.TODO(), "mhcweb", "")
		c.Assert(IsConfigError(err), check.Equals, true, check.Commentf(tc.comment))
	}
}

func (s *ResolverSuite) TestEmptyHostclassIsRejected(c *check.C) {
	resolver, autoscale := newTestResolver(c, testConfig)

	_, err := resolver.ResolveOptions(context.TODO(), "", "")
	c.Assert(trace.IsBadParameter(err), check.Equals, true, check.Commentf("%v", err))
	_, err = resolver.Alarms(context.TODO(), "", "ci_mhcweb_1")
	c.Assert(trace.IsBadParameter(err), check.Equals, true, check.Commentf("%v", err))
	c.Assert(autoscale.calls, check.HasLen, 0)
}

func (s *ResolverSuite) TestCaseAndCommentCharactersInConfig(c *check.C) {
	resolver, _ := newTestResolver(c, `
[notifications]
astro_ci_critical = https://hooks.example.com/alarm#frag,ops@example.com
astro_ci_info = a;b@example.com

[astro.Custom.QueueDepth]
Duration = 1
Period = 60
Statistic = Average
Level = critical
Threshold_Max = 5
`)
	alarms, err := resolver.Alarms(context.TODO(), "mhcweb", "ci_mhcweb_1")
	c.Assert(err, check.IsNil)
	c.Assert(alarmNames(alarms), check.DeepEquals, []string{"astro_ci_mhcweb_QueueDepth_max"})
	c.Assert(alarms[0].Threshold, check.Equals, int64(5))

	notifications, err := resolver.Notifications()
	c.Assert(err, check.IsNil)
	c.Assert(notifications, check.HasLen, 2)
	c.Assert(notifications[0].Endpoints, check.DeepEquals, []string{
		"https://hooks.example.com/alarm#frag", "ops@example.com",
	})
	c.Assert(notifications[1].Endpoints, check.DeepEquals, []string{"a;b@example.com"})
}

func (s *ResolverSuite) TestMissingDefaults(c *check.C) {
	resolver, _ := newTestResolver(c, `
[astro.Custom.QueueDepth]
duration = 1
period = 60
statistic = Average
level = critical
threshold_min = 1
`)
	c.Assert(resolver.Defaults(), check.DeepEquals, Options{})
	alarms, err := resolver.Alarms(context.TODO(), "mhcweb", "")
	c.Assert(err, check.IsNil)
	c.Assert(alarmNames(alarms), check.DeepEquals, []string{"astro_ci_mhcweb_QueueDepth_min"})
}

func (s *ResolverSuite) TestMetricAlarm(c *check.C) {
	alarm := Alarm{
		Team:          "astro",
		Environment:   "ci",
		Hostclass:     "mhcsearch",
		Namespace:     "AWS/ES",
		MetricName:    "FreeStorageSpace",
		Duration:      3,
		Period:        300,
		Statistic:     "Minimum",
		ESDomainName:  "es-mhcsearch-ci",
		ESClientID:    "123456789012",
		Level:         "critical",
		Threshold:     1000,
		ThresholdType: "min",
	}
	request := alarm.MetricAlarm("arn:aws:sns:astro_ci_critical")
	c.Assert(request.Comparison, check.Equals, "<")
	c.Assert(request.Name, check.Equals, "astro_ci_mhcsearch_FreeStorageSpace_min")
	c.Assert(request.EvaluationPeriods, check.Equals, int64(3))

	input := request.PutMetricAlarmInput()
	c.Assert(aws.StringValue(input.ComparisonOperator), check.Equals,
		cloudwatch.ComparisonOperatorLessThanThreshold)
	c.Assert(input.Dimensions, check.DeepEquals, []*cloudwatch.Dimension{
		{Name: aws.String("ClientId"), Value: aws.String("123456789012")},
		{Name: aws.String("DomainName"), Value: aws.String("es-mhcsearch-ci")},
	})
	c.Assert(aws.Int64Value(input.Period), check.Equals, int64(300))
	c.Assert(aws.Float64Value(input.Threshold), check.Equals, float64(1000))
}

func (s *ResolverSuite) TestNotifications(c *check.C) {
	resolver, _ := newTestResolver(c, testConfig)

	notifications, err := resolver.Notifications()
	c.Assert(err, check.IsNil)
	c.Assert(notifications, compare.DeepEquals, []Notification{
		{Name: "astro_ci_critical", Endpoints: []string{"ops@example.com", "https://hooks.example.com/alarm"}},
		{Name: "astro_ci_info", Endpoints: []string{"info@example.com"}},
	})
}

func (s *ResolverSuite) TestInvalidNotifications(c *check.C) {
	for _, entry := range []string{"astro_critical = ops@example.com", "astro_ci_warning = ops@example.com"} {
		resolver, _ := newTestResolver(c, "[notifications]\n"+entry+"\n")
		_, err := resolver.Notifications()
		c.Assert(IsConfigError(err), check.Equals, true, check.Commentf(entry))
	}

	resolver, _ := newTestResolver(c, "[defaults]\nperiod = 60\n")
	_, err := resolver.Notifications()
	c.Assert(trace.IsNotFound(err), check.Equals, true)
}

func (s *ResolverSuite) TestConfigRequiresEnvironmentAndStore(c *check.C) {
	store, err := config.Parse([]byte(testConfig))
	c.Assert(err, check.IsNil)
	_, err = New(Config{Store: store})
	c.Assert(trace.IsBadParameter(err), check.Equals, true)
	_, err = New(Config{Environment: "ci"})
	c.Assert(trace.IsBadParameter(err), check.Equals, true)
}

func newTestResolver(c *check.C, data string) (*Resolver, *fakeAutoscale) {
	store, err := config.Parse([]byte(data))
	c.Assert(err, check.IsNil)
	autoscale := &fakeAutoscale{groups: map[string]string{
		"mhcweb": "ci_mhcweb_2",
		"mhcapi": "ci_mhcapi_1",
	}}
	resolver, err := New(Config{
		Environment:   "ci",
		Store:         store,
		Autoscale:     autoscale,
		LoadBalancers: fakeLoadBalancers{},
	})
	c.Assert(err, check.IsNil)
	return resolver, autoscale
}

func alarmNames(alarms []Alarm) []string {
	names := make([]string, 0, len(alarms))
	for _, alarm := range alarms {
		names = append(names, alarm.Name())
	}
	return names
}

type fakeAutoscale struct {
	groups map[string]string
	calls  []string
}

func (f *fakeAutoscale) GetExistingGroup(ctx context.Context, hostclass string) (*Group, error) {
	f.calls = append(f.calls, hostclass)
	name, ok := f.groups[hostclass]
	if !ok {
		return nil, trace.NotFound("no autoscaling group for %v", hostclass)
	}
	return &Group{Name: name}, nil
}

type fakeSearch struct {
	clientID string
	domains  []string
}

func (f *fakeSearch) GetDomainName(name string) string {
	return "es-" + name + "-ci"
}

func (f *fakeSearch) GetClientID(ctx context.Context, domainName string) (string, error) {
	f.domains = append(f.domains, domainName)
	return f.clientID, nil
}

type fakeLoadBalancers struct{}

func (fakeLoadBalancers) ID(environment, hostclass string) (string, error) {
	return "elb-" + environment + "-" + hostclass, nil
}
