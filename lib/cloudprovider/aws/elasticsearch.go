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

	"github.com/gravitational/hostalarm/lib/defaults"
	"github.com/gravitational/hostalarm/lib/utils"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/client"
	"github.com/aws/aws-sdk-go/service/elasticsearchservice"
	"github.com/gravitational/trace"
)

// Elasticsearch resolves Elasticsearch Service domains of an environment
type Elasticsearch struct {
	// Environment is the environment name
	Environment string
	// Client is the Elasticsearch Service API client
	Client ElasticsearchService
}

// NewElasticsearch returns a new Elasticsearch domain lookup
func NewElasticsearch(environment string, session client.ConfigProvider) *Elasticsearch {
	return &Elasticsearch{
		Environment: environment,
		Client:      elasticsearchservice.New(session),
	}
}

// GetDomainName returns the domain name of the cluster with the given
// name in the current environment: es-<name>-<environment>
func (e *Elasticsearch) GetDomainName(name string) string {
	return strings.Join([]string{defaults.ESDomainPrefix, name, e.Environment}, "-")
}

// GetClientID returns the ID of the account that owns the domain.
// Domain IDs have the form <account id>/<domain name>.
func (e *Elasticsearch) GetClientID(ctx context.Context, domainName string) (string, error) {
	var out *elasticsearchservice.DescribeElasticsearchDomainOutput
	err := utils.CallWithRetry(ctx, func() (err error) {
		out, err = e.Client.DescribeElasticsearchDomainWithContext(ctx,
			&elasticsearchservice.DescribeElasticsearchDomainInput{
				DomainName: aws.String(domainName),
			})
		return err
	})
	if err != nil {
		return "", ConvertError(err)
	}
	if out.DomainStatus == nil || aws.StringValue(out.DomainStatus.DomainId) == "" {
		return "", trace.NotFound("domain %v has no ID", domainName)
	}
	return strings.SplitN(aws.StringValue(out.DomainStatus.DomainId), "/", 2)[0], nil
}
