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
	"sync"

	"github.com/gravitational/hostalarm/lib/constants"
	"github.com/gravitational/hostalarm/lib/elb"

	"github.com/gravitational/trace"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField(trace.Component, constants.ComponentAlarms)

// Config is the alarm resolver configuration
type Config struct {
	// Environment is the environment alarms are resolved for
	Environment string
	// Store is the loaded alarm configuration
	Store ConfigStore
	// Autoscale looks up autoscaling groups of hostclasses.
	// If unset, NewAutoscale is used to create one on first use
	Autoscale AutoscaleLookup
	// NewAutoscale creates the autoscaling lookup when an AWS/EC2 alarm
	// needs one and Autoscale is not set
	NewAutoscale func() (AutoscaleLookup, error)
	// Search resolves Elasticsearch Service domains. AWS/ES alarms
	// are skipped when it is not set
	Search SearchDomainLookup
	// LoadBalancers computes load balancer names for AWS/ELB alarms
	LoadBalancers LoadBalancerIdentity
	// FieldLogger is used for logging
	logrus.FieldLogger
}

// CheckAndSetDefaults validates the configuration and sets default values
func (c *Config) CheckAndSetDefaults() error {
	if c.Environment == "" {
		return trace.BadParameter("missing parameter Environment")
	}
	if c.Store == nil {
		return trace.BadParameter("missing parameter Store")
	}
	if c.LoadBalancers == nil {
		c.LoadBalancers = elb.Identity{}
	}
	if c.FieldLogger == nil {
		c.FieldLogger = log.WithField("env", c.Environment)
	}
	return nil
}

// Resolver resolves alarm definitions of hostclasses from the alarm configuration.
//
// A resolver reads the configuration once: create a new one to pick up changes.
// It is not safe for concurrent use.
type Resolver struct {
	Config
	// defaults are the options every alarm inherits
	defaults Options

	autoscaleOnce sync.Once
	autoscale     AutoscaleLookup
	autoscaleErr  error
}

// New returns a new alarm resolver
func New(config Config) (*Resolver, error) {
	if err := config.CheckAndSetDefaults(); err != nil {
		return nil, trace.Wrap(err)
	}
	defaults := Options{}
	if config.Store.HasSection(constants.SectionDefaults) {
		items, err := config.Store.Items(constants.SectionDefaults)
		if err != nil {
			return nil, trace.Wrap(err)
		}
		defaults = Merge(defaults, items)
	}
	return &Resolver{
		Config:   config,
		defaults: defaults,
	}, nil
}

// Defaults returns the options inherited by every alarm
func (r *Resolver) Defaults() Options {
	return Merge(nil, r.defaults)
}

// Alarms returns all alarms of the hostclass.
//
// If autoscalingGroupName is set, it is used as the autoscaling group of the
// hostclass instead of looking it up. The order of the returned alarms is
// not defined.
func (r *Resolver) Alarms(ctx context.Context, hostclass, autoscalingGroupName string) ([]Alarm, error) {
	resolved, err := r.ResolveOptions(ctx, hostclass, autoscalingGroupName)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	var alarms []Alarm
	for _, options := range resolved {
		for _, threshold := range constants.ThresholdOptions {
			if _, ok := options[threshold.Key]; !ok {
				continue
			}
			alarm, err := newAlarm(options, threshold)
			if err != nil {
				return nil, trace.Wrap(err)
			}
			if alarm.Namespace == constants.NamespaceELB {
				alarm.LoadBalancerID, err = r.LoadBalancers.ID(r.Environment, hostclass)
				if err != nil {
					return nil, trace.Wrap(err)
				}
			}
			r.Debugf("Resolved %v.", alarm)
			alarms = append(alarms, *alarm)
		}
	}
	return alarms, nil
}

// ResolveOptions returns the merged options of every alarm config section
// that applies to the hostclass.
//
// A section with a malformed name fails the whole resolution.
func (r *Resolver) ResolveOptions(ctx context.Context, hostclass, autoscalingGroupName string) ([]Options, error) {
	if hostclass == "" {
		return nil, trace.BadParameter("missing hostclass")
	}
	var result []Options
	for _, name := range r.Store.Sections() {
		if name == constants.SectionNotifications || name == constants.SectionDefaults {
			continue
		}
		section, err := DecodeSection(name)
		if err != nil {
			return nil, trace.Wrap(err)
		}
		if section.Hostclass != "" && section.Hostclass != hostclass {
			continue
		}
		if section.Namespace == constants.NamespaceES && r.Search == nil {
			r.Infof("Skipping %v because no Elasticsearch lookup was provided.", section)
			continue
		}
		options, err := r.SectionOptions(ctx, *section, hostclass,
			section.Hostclass == hostclass, autoscalingGroupName)
		if err != nil {
			return nil, trace.Wrap(err)
		}
		if options == nil {
			continue
		}
		for _, threshold := range constants.ThresholdOptions {
			value, ok := options[threshold.Key]
			if ok && !isDigits(value) {
				return nil, configErrorf("not a valid threshold value for %v: %v",
					threshold.Key, options)
			}
		}
		result = append(result, options)
	}
	return result, nil
}

// SectionOptions returns the options of the alarm described by section
// for the given hostclass.
//
// With hostclassSpecific set, the options of the hostclass section are applied
// on top of the options shared by all hostclasses. Otherwise only the shared
// options are used, and nil options are returned if a hostclass section exists:
// the alarm is then defined by that section.
func (r *Resolver) SectionOptions(ctx context.Context, section Section, hostclass string, hostclassSpecific bool, autoscalingGroupName string) (Options, error) {
	parentName := section.ParentName()
	childName := section.ChildName(hostclass)

	options := r.defaults
	if hostclassSpecific {
		if r.Store.HasSection(parentName) {
			parent, err := r.Store.Items(parentName)
			if err != nil {
				return nil, trace.Wrap(err)
			}
			options = Merge(options, parent)
		}
		child, err := r.Store.Items(childName)
		if err != nil {
			return nil, trace.Wrap(err)
		}
		options = Merge(options, child)
	} else {
		if r.Store.HasSection(childName) {
			r.Debugf("Section %v is overridden by %v.", parentName, childName)
			return nil, nil
		}
		parent, err := r.Store.Items(parentName)
		if err != nil {
			return nil, trace.Wrap(err)
		}
		options = Merge(options, parent)
	}

	options = Merge(options, Options{
		optionTeam:        section.Team,
		optionNamespace:   section.Namespace,
		optionMetricName:  section.MetricName,
		optionHostclass:   hostclass,
		optionEnvironment: r.Environment,
	})

	lookups, err := r.lookupOptions(ctx, section.Namespace, hostclass, autoscalingGroupName)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	options = Merge(options, lookups)

	// metrics extracted from logs live in environment specific namespaces
	// and carry the hostclass in the metric name
	if options.Bool(optionLogPatternMetric) {
		options = Merge(options, Options{
			optionNamespace:  section.Namespace + "/" + r.Environment,
			optionMetricName: hostclass + "-" + section.MetricName,
		})
	}
	return options, nil
}

// lookupOptions returns the options that depend on provider resources
func (r *Resolver) lookupOptions(ctx context.Context, namespace, hostclass, autoscalingGroupName string) (Options, error) {
	options := Options{}
	if autoscalingGroupName != "" {
		options[optionAutoscalingGroupName] = autoscalingGroupName
	} else if namespace == constants.NamespaceEC2 {
		autoscale, err := r.getAutoscale()
		if err != nil {
			return nil, trace.Wrap(err)
		}
		group, err := autoscale.GetExistingGroup(ctx, hostclass)
		if err != nil {
			return nil, trace.Wrap(err)
		}
		options[optionAutoscalingGroupName] = group.Name
	}
	if namespace == constants.NamespaceES && r.Search != nil {
		domainName := r.Search.GetDomainName(hostclass)
		clientID, err := r.Search.GetClientID(ctx, domainName)
		if err != nil {
			return nil, trace.Wrap(err)
		}
		options[optionESDomainName] = domainName
		options[optionESClientID] = clientID
	}
	return options, nil
}

func (r *Resolver) getAutoscale() (AutoscaleLookup, error) {
	r.autoscaleOnce.Do(func() {
		if r.Autoscale != nil {
			r.autoscale = r.Autoscale
			return
		}
		if r.NewAutoscale == nil {
			r.autoscaleErr = trace.BadParameter("no autoscaling group lookup configured")
			return
		}
		r.autoscale, r.autoscaleErr = r.NewAutoscale()
	})
	if r.autoscaleErr != nil {
		return nil, trace.Wrap(r.autoscaleErr)
	}
	return r.autoscale, nil
}
