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

// Package elb computes the names classic load balancers and target groups
// of hostclasses are created with
package elb

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"

	"github.com/gravitational/hostalarm/lib/defaults"

	"github.com/gravitational/trace"
)

// Name returns the human readable load balancer name of the hostclass.
// Load balancer names may only contain letters, digits and dashes.
func Name(environment, hostclass string, testing bool) (string, error) {
	name := environment + "-" + hostclass
	if testing {
		name += "-test"
	}
	name = invalidNameChars.ReplaceAllString(name, "")
	if len(name) > defaults.ELBNameMaxLength {
		return "", trace.BadParameter("load balancer name %v is over %v characters",
			name, defaults.ELBNameMaxLength)
	}
	return name, nil
}

// ID returns the load balancer identifier of the hostclass: the hex encoded
// SHA-256 of its name truncated to 32 characters
func ID(environment, hostclass string, testing bool) (string, error) {
	name, err := Name(environment, hostclass, testing)
	if err != nil {
		return "", trace.Wrap(err)
	}
	return hash(name)[:defaults.ELBIDLength], nil
}

// TargetGroupName returns the target group name of the hostclass.
// Names longer than 32 characters are truncated and suffixed with
// a short hash to keep them unique.
func TargetGroupName(environment, hostclass string) string {
	name := strings.Replace(environment+"-"+hostclass, "_", "-", -1)
	if len(name) <= defaults.TargetGroupNameMaxLength {
		return name
	}
	prefix := name[:defaults.TargetGroupNameMaxLength-defaults.TargetGroupHashLength]
	return prefix + hash(name)[:defaults.TargetGroupHashLength]
}

// CNAME returns the DNS name the load balancer of the hostclass is published under
func CNAME(environment, hostclass, domainName string, testing bool) string {
	if testing {
		hostclass += "-test"
	}
	return hostclass + "-" + environment + "." + domainName
}

// Identity computes load balancer identifiers of non-testing load balancers
type Identity struct{}

// ID returns the load balancer identifier of the hostclass
func (Identity) ID(environment, hostclass string) (string, error) {
	return ID(environment, hostclass, false)
}

func hash(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}

var invalidNameChars = regexp.MustCompile(`[^a-zA-Z0-9-]`)
