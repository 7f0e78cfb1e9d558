package resolver_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sornss/location/internal/common"
	"github.com/sornss/location/internal/resolver"
)

func TestResolveIP_Explicit(t *testing.T) {
	type args struct {
		ip string
	}
	type want struct {
		ip  string
		err bool
	}
	tests := []struct {
		name string
		args args
		want want
	}{
		{"ipv4", args{ip: "81.2.69.142"}, want{ip: "81.2.69.142"}},
		{"ipv6", args{ip: "2606:4700:4700::1111"}, want{ip: "2606:4700:4700::1111"}},
		{"ipv4 loopback", args{ip: "127.0.0.1"}, want{ip: "127.0.0.1"}},
		{"not an ip", args{ip: "example.com"}, want{err: true}},
		{"too many octets", args{ip: "1.2.3.4.5"}, want{err: true}},
		{"octet out of range", args{ip: "256.1.1.1"}, want{err: true}},
		{"garbage", args{ip: "::g"}, want{err: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := resolver.NewIPResolver(&common.Config{})

			ip, err := r.Resolve(nil, tt.args.ip)

			if tt.want.err {
				var e resolver.InvalidAddressError
				require.ErrorAs(t, err, &e)
				require.Contains(t, err.Error(), tt.args.ip)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want.ip, ip, "valid ip must pass through unchanged")
		})
	}
}

func TestResolveIP_LocalTestingVerbatim(t *testing.T) {
	cfg := &common.Config{
		LocalTesting: common.LocalTestingConfig{Enabled: true, IP: "10.0.0.1"},
	}
	r := resolver.NewIPResolver(cfg)

	env := &resolver.MapEnviron{
		Values: map[string]string{"X-Forwarded-For": "1.1.1.1"},
	}
	ip, err := r.Resolve(env, "")
	require.NoError(t, err)
	require.Equal(t, "10.0.0.1", ip, "testing ip wins over environment signal")
}

func TestResolveIP_SourceOrder(t *testing.T) {
	type args struct {
		values map[string]string
		addr   string
	}
	tests := []struct {
		name string
		args args
		want string
	}{
		{
			"client-ip beats forwarded-for",
			args{values: map[string]string{
				"Client-IP":       "1.1.1.1",
				"X-Forwarded-For": "2.2.2.2",
			}},
			"1.1.1.1",
		},
		{
			"forwarded-for chain takes first hop",
			args{values: map[string]string{
				"X-Forwarded-For": "3.3.3.3, 10.0.0.2, 10.0.0.1",
			}},
			"3.3.3.3",
		},
		{
			"x-forwarded beats forwarded",
			args{values: map[string]string{
				"X-Forwarded": "4.4.4.4",
				"Forwarded":   "5.5.5.5",
			}},
			"4.4.4.4",
		},
		{
			"x-real-ip beats remote addr",
			args{
				values: map[string]string{"X-Real-IP": "6.6.6.6"},
				addr:   "7.7.7.7:34712",
			},
			"6.6.6.6",
		},
		{
			"remote addr with port stripped",
			args{addr: "7.7.7.7:34712"},
			"7.7.7.7",
		},
		{
			"nothing present falls back to default",
			args{},
			"9.9.9.9",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := resolver.NewIPResolver(&common.Config{DefaultIP: "9.9.9.9"})

			env := &resolver.MapEnviron{Values: tt.args.values, Addr: tt.args.addr}
			ip, err := r.Resolve(env, "")
			require.NoError(t, err)
			require.Equal(t, tt.want, ip)
		})
	}
}

func TestResolveIP_NoEnviron(t *testing.T) {
	r := resolver.NewIPResolver(&common.Config{DefaultIP: "9.9.9.9"})

	ip, err := r.Resolve(nil, "")
	require.NoError(t, err)
	require.Equal(t, "9.9.9.9", ip, "batch invocation without http context uses the default")
}

func TestRequestEnviron(t *testing.T) {
	req := httptest.NewRequest("GET", "http://example.com/", nil)
	req.Header.Set("X-Forwarded-For", "3.3.3.3, 10.0.0.1")
	req.RemoteAddr = "7.7.7.7:34712"

	r := resolver.NewIPResolver(&common.Config{})

	ip, err := r.Resolve(resolver.NewRequestEnviron(req), "")
	require.NoError(t, err)
	require.Equal(t, "3.3.3.3", ip)
}
