package iputils

import (
	"net"
	"testing"

	"gotest.tools/v3/assert"
)

func TestAddIPInt(t *testing.T) {
	type testCase struct {
		s        string
		i        int
		expected string
	}
	testCases := []testCase{
		{
			"10.0.2.0",
			100,
			"10.0.2.100",
		},
		{
			"255.255.255.100",
			155,
			"255.255.255.255",
		},
		{
			"255.255.255.100",
			156,
			"",
		},
		{
			"0.0.0.1",
			-2,
			"",
		},
	}
	for i, tc := range testCases {
		ip := net.ParseIP(tc.s)
		if ip == nil {
			t.Fatalf("invalid IP: %q", tc.s)
		}
		gotIP, err := AddIPInt(ip, tc.i)
		if tc.expected == "" {
			if err == nil {
				t.Fatalf("#%d: expected error, got no error", i)
			}
		} else {
			if err != nil {
				t.Fatalf("#%d: expected no error, got %q", i, err)
			}
			got := gotIP.String()
			if got != tc.expected {
				t.Fatalf("#%d: expected %q, got %q", i, tc.expected, got)
			}
		}
	}
}

func TestDefaultPeer(t *testing.T) {
	testCases := []struct {
		cidr     string
		expected string
	}{
		{"10.10.10.1/24", "10.10.10.2"},
		{"10.10.10.253/24", "10.10.10.254"},
		{"10.10.10.254/24", ""},
		{"10.10.10.255/24", ""},
		{"192.168.0.0/31", "192.168.0.1"},
		{"fd00::1/64", ""},
	}
	for _, tc := range testCases {
		t.Run(tc.cidr, func(t *testing.T) {
			ip, ipnet, err := net.ParseCIDR(tc.cidr)
			assert.NilError(t, err)
			ipnet.IP = ip
			got, err := DefaultPeer(ipnet)
			if tc.expected == "" {
				assert.Assert(t, err != nil, "expected error, got %s", got)
				return
			}
			assert.NilError(t, err)
			assert.Equal(t, tc.expected, got.String())
		})
	}
}
