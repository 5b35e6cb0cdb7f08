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
)

// ConfigStore is a loaded alarm configuration document
type ConfigStore interface {
	// Sections returns the names of all sections
	Sections() []string
	// HasSection returns true if the section exists
	HasSection(name string) bool
	// Items returns the options of the section
	Items(section string) (map[string]string, error)
}

// AutoscaleLookup finds the autoscaling group of a hostclass
type AutoscaleLookup interface {
	// GetExistingGroup returns the autoscaling group of the hostclass
	// in the current environment
	GetExistingGroup(ctx context.Context, hostclass string) (*Group, error)
}

// Group is an autoscaling group
type Group struct {
	// Name is the autoscaling group name
	Name string
}

// SearchDomainLookup resolves Elasticsearch Service domains
type SearchDomainLookup interface {
	// GetDomainName returns the domain name of the cluster with the given name
	GetDomainName(name string) string
	// GetClientID returns the account ID that owns the domain
	GetClientID(ctx context.Context, domainName string) (string, error)
}

// LoadBalancerIdentity computes load balancer identifiers
type LoadBalancerIdentity interface {
	// ID returns the load balancer name CloudWatch reports metrics for
	ID(environment, hostclass string) (string, error)
}
