package ipapicom_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sornss/location/pkg/ipapicom"
)

func TestGetLocationForIP(t *testing.T) {
	type args struct {
		status int
		body   string
	}
	type want struct {
		err      error
		anyErr   bool
		location *ipapicom.Location
	}
	tests := []struct {
		name string
		args args
		want want
	}{
		{
			"success",
			args{
				status: http.StatusOK,
				body: `{
					"status": "success",
					"query": "1.1.1.1",
					"country": "Australia",
					"countryCode": "AU",
					"region": "QLD",
					"regionName": "Queensland",
					"city": "South Brisbane",
					"zip": "4101",
					"lat": -27.4766,
					"lon": 153.0166,
					"timezone": "Australia/Brisbane",
					"isp": "Cloudflare, Inc",
					"org": "APNIC and Cloudflare DNS Resolver project",
					"as": "AS13335 Cloudflare, Inc."
				}`,
			},
			want{
				location: &ipapicom.Location{
					Status:      "success",
					Query:       "1.1.1.1",
					Country:     "Australia",
					CountryCode: "AU",
					Region:      "QLD",
					RegionName:  "Queensland",
					City:        "South Brisbane",
					Zip:         "4101",
					Lat:         -27.4766,
					Lon:         153.0166,
					Timezone:    "Australia/Brisbane",
					Isp:         "Cloudflare, Inc",
					Org:         "APNIC and Cloudflare DNS Resolver project",
					As:          "AS13335 Cloudflare, Inc.",
				},
			},
		},
		{
			"reserved range",
			args{
				status: http.StatusOK,
				body:   `{"status": "fail", "message": "reserved range"}`,
			},
			want{err: ipapicom.ErrReservedRange},
		},
		{
			"lookup failure",
			args{
				status: http.StatusOK,
				body:   `{"status": "fail", "message": "invalid query"}`,
			},
			want{anyErr: true},
		},
		{
			"http error",
			args{
				status: http.StatusBadGateway,
				body:   `{}`,
			},
			want{anyErr: true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(
				func(w http.ResponseWriter, _ *http.Request) {
					w.WriteHeader(tt.args.status)
					_, _ = w.Write([]byte(tt.args.body))
				},
			))
			defer srv.Close()

			c := ipapicom.NewClientWithBaseURL(srv.URL)
			l, err := c.GetLocationForIP(context.Background(), "1.1.1.1")

			switch {
			case tt.want.err != nil:
				require.ErrorIs(t, err, tt.want.err)
			case tt.want.anyErr:
				require.Error(t, err)
			default:
				require.NoError(t, err)
				require.Equal(t, tt.want.location, l)
			}
		})
	}
}
