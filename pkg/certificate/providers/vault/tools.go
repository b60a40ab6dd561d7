package vault

import (
	"fmt"
	"strings"
	"time"

	"github.com/vaultops/certctl/pkg/certificate"
)

func getDurationInSeconds(validityPeriod time.Duration) string {
	return fmt.Sprintf("%ds", int64(validityPeriod/time.Second))
}

func getIssueURL(domain string) string {
	return fmt.Sprintf("pki/%s/issue/cert", domain)
}

func getCAPemPath(domain string) string {
	return fmt.Sprintf("/v1/pki/%s/ca/pem", domain)
}

func getIssuanceData(req certificate.Request) map[string]interface{} {
	data := map[string]interface{}{
		commonNameField: req.CommonName.String(),
		ttlField:        getDurationInSeconds(req.TTL),
	}
	if len(req.AltNames) > 0 {
		data[altNamesField] = strings.Join(req.AltNames, ",")
	}
	if len(req.IPSANs) > 0 {
		data[ipSANsField] = strings.Join(req.IPSANs, ",")
	}
	return data
}
