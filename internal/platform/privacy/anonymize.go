// Package privacy masks personally identifying values before they reach
// logs. Requests here come from citizens filing civil-registration records,
// so access logs must not tie a full client address to an applicant.
package privacy

import (
	"fmt"
	"net"
)

// AnonymizeIP truncates an IP address so the logged value no longer
// identifies a single host.
//
// IPv4 addresses lose the last octet ("192.168.1.47" -> "192.168.1.0"),
// masking to a /24. IPv6 addresses keep only the /48 prefix
// ("2001:db8:85a3::8a2e:370:7334" -> "2001:db8:85a3::").
//
// Returns "invalid" for unparseable addresses and "unknown" for empty
// strings, so log fields never carry raw input on the error paths either.
func AnonymizeIP(ip string) string {
	if ip == "" || ip == "unknown" {
		return "unknown"
	}

	parsed := net.ParseIP(ip)
	if parsed == nil {
		return "invalid"
	}

	// IPv4, including IPv4-mapped IPv6.
	if v4 := parsed.To4(); v4 != nil {
		return fmt.Sprintf("%d.%d.%d.0", v4[0], v4[1], v4[2])
	}

	// IPv6: keep the first 6 bytes, the /48 routing prefix.
	return fmt.Sprintf("%02x%02x:%02x%02x:%02x%02x::",
		parsed[0], parsed[1],
		parsed[2], parsed[3],
		parsed[4], parsed[5])
}
