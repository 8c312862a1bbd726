package digest

import "html/template"

var emailTemplate = template.Must(template.New("digest").Parse(`<!DOCTYPE html>
<html lang="en">
  <head>
    <meta charset="UTF-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1.0" />
    <title>Signalist Daily Market Briefing</title>
  </head>
  <body style="margin:0; padding:0; background:#f5f7fb; color:#111827; font-family: -apple-system, BlinkMacSystemFont, Segoe UI, Roboto, Helvetica, Arial, sans-serif;">
    <table role="presentation" cellpadding="0" cellspacing="0" border="0" width="100%" style="background:#f5f7fb;">
      <tr>
        <td align="center" style="padding:24px 12px;">
          <table role="presentation" cellpadding="0" cellspacing="0" border="0" width="600" style="width:600px; max-width:100%; background:#ffffff; border-radius:12px; overflow:hidden; box-shadow:0 1px 3px rgba(0,0,0,0.06);">
            <tr>
              <td style="padding:24px 24px 12px; border-bottom:1px solid #e5e7eb;">
                <div style="font-size:20px; font-weight:700; color:#111827;">Signalist Daily Market Briefing</div>
                <div style="margin-top:6px; font-size:14px; color:#6b7280;">{{.Date}}</div>
              </td>
            </tr>

            <tr>
              <td style="padding:16px 24px;">
                <div style="font-size:16px; font-weight:600; color:#111827; margin-bottom:8px;">Market Snapshot</div>
                <table role="presentation" cellpadding="0" cellspacing="0" border="0" width="100%" style="border:1px solid #e5e7eb; border-radius:8px;">
                  <tr>
                    <td style="padding:12px; border-bottom:1px solid #e5e7eb; background:#f9fafb; font-size:12px; text-transform:uppercase; color:#6b7280;">Index</td>
                    <td style="padding:12px; border-bottom:1px solid #e5e7eb; background:#f9fafb; font-size:12px; text-transform:uppercase; color:#6b7280;" align="right">Change</td>
                  </tr>
                  {{range .MarketSnapshot}}<tr>
                    <td style="padding:12px; border-bottom:1px solid #e5e7eb; font-size:14px; color:#111827;">{{.Label}}</td>
                    <td style="padding:12px; border-bottom:1px solid #e5e7eb; font-size:14px; color:{{.Color}};" align="right">{{.Change}}</td>
                  </tr>{{end}}
                </table>
              </td>
            </tr>

            <tr>
              <td style="padding:8px 24px 8px;">
                <div style="font-size:16px; font-weight:600; color:#111827; margin-bottom:8px;">Top Movers (Your Watchlist)</div>
                <table role="presentation" cellpadding="0" cellspacing="0" border="0" width="100%" style="border:1px solid #e5e7eb; border-radius:8px;">
                  <tr>
                    <td style="padding:12px; background:#f9fafb; font-size:12px; text-transform:uppercase; color:#6b7280;">Symbol</td>
                    <td style="padding:12px; background:#f9fafb; font-size:12px; text-transform:uppercase; color:#6b7280;">Price</td>
                    <td style="padding:12px; background:#f9fafb; font-size:12px; text-transform:uppercase; color:#6b7280;" align="right">Change</td>
                  </tr>
                  {{range .TopMovers}}<tr>
                    <td style="padding:12px; border-bottom:1px solid #e5e7eb; font-size:14px; color:#111827;">{{.Symbol}}</td>
                    <td style="padding:12px; border-bottom:1px solid #e5e7eb; font-size:14px; color:#111827;">{{.Price}}</td>
                    <td style="padding:12px; border-bottom:1px solid #e5e7eb; font-size:14px; color:{{.Color}};" align="right">{{.Change}}</td>
                  </tr>{{end}}
                </table>
              </td>
            </tr>

            <tr>
              <td style="padding:8px 24px 8px;">
                <div style="font-size:16px; font-weight:600; color:#111827; margin-bottom:8px;">Valuation Snapshot</div>
                <table role="presentation" cellpadding="0" cellspacing="0" border="0" width="100%" style="border:1px solid #e5e7eb; border-radius:8px;">
                  <tr>
                    <td style="padding:12px; background:#f9fafb; font-size:12px; text-transform:uppercase; color:#6b7280;">Symbol</td>
                    <td style="padding:12px; background:#f9fafb; font-size:12px; text-transform:uppercase; color:#6b7280;">P/E</td>
                    <td style="padding:12px; background:#f9fafb; font-size:12px; text-transform:uppercase; color:#6b7280;">Market Cap</td>
                    <td style="padding:12px; background:#f9fafb; font-size:12px; text-transform:uppercase; color:#6b7280;" align="right">Note</td>
                  </tr>
                  {{range .Valuations}}<tr>
                    <td style="padding:12px; border-bottom:1px solid #e5e7eb; font-size:14px; color:#111827;">{{.Symbol}}</td>
                    <td style="padding:12px; border-bottom:1px solid #e5e7eb; font-size:14px; color:#111827;">{{.PE}}</td>
                    <td style="padding:12px; border-bottom:1px solid #e5e7eb; font-size:14px; color:#111827;">{{.MarketCap}}</td>
                    <td style="padding:12px; border-bottom:1px solid #e5e7eb; font-size:12px; color:#6b7280;" align="right">{{.Note}}</td>
                  </tr>{{end}}
                </table>
              </td>
            </tr>

            <tr>
              <td style="padding:8px 24px 8px;">
                <div style="font-size:16px; font-weight:600; color:#111827; margin-bottom:8px;">Volume Leaders</div>
                <table role="presentation" cellpadding="0" cellspacing="0" border="0" width="100%" style="border:1px solid #e5e7eb; border-radius:8px;">
                  <tr>
                    <td style="padding:12px; background:#f9fafb; font-size:12px; text-transform:uppercase; color:#6b7280;">Symbol</td>
                    <td style="padding:12px; background:#f9fafb; font-size:12px; text-transform:uppercase; color:#6b7280;">Volume</td>
                    <td style="padding:12px; background:#f9fafb; font-size:12px; text-transform:uppercase; color:#6b7280;" align="right">Price</td>
                  </tr>
                  {{range .VolumeLeaders}}<tr>
                    <td style="padding:12px; border-bottom:1px solid #e5e7eb; font-size:14px; color:#111827;">{{.Symbol}}</td>
                    <td style="padding:12px; border-bottom:1px solid #e5e7eb; font-size:14px; color:#111827;">{{.Volume}}</td>
                    <td style="padding:12px; border-bottom:1px solid #e5e7eb; font-size:14px; color:#111827;" align="right">{{.Price}}</td>
                  </tr>{{end}}
                </table>
              </td>
            </tr>

            <tr>
              <td style="padding:8px 24px 8px;">
                <div style="font-size:16px; font-weight:600; color:#111827; margin-bottom:8px;">Top Stories</div>
                <table role="presentation" cellpadding="0" cellspacing="0" border="0" width="100%" style="border:1px solid #e5e7eb; border-radius:8px;">
                  <tr>
                    <td style="padding:16px; font-size:14px; color:#111827; line-height:1.6;">
                      {{.NewsSections}}
                    </td>
                  </tr>
                </table>
              </td>
            </tr>

            <tr>
              <td style="padding:8px 24px 8px;">
                <div style="font-size:16px; font-weight:600; color:#111827; margin-bottom:8px;">Your Watchlist</div>
                <table role="presentation" cellpadding="0" cellspacing="0" border="0" width="100%" style="border:1px solid #e5e7eb; border-radius:8px;">
                  <tr>
                    <td style="padding:12px; background:#f9fafb; font-size:12px; text-transform:uppercase; color:#6b7280;">Symbol</td>
                    <td style="padding:12px; background:#f9fafb; font-size:12px; text-transform:uppercase; color:#6b7280;">Price</td>
                    <td style="padding:12px; background:#f9fafb; font-size:12px; text-transform:uppercase; color:#6b7280;" align="right">Change</td>
                  </tr>
                  {{range .Watchlist}}<tr>
                    <td style="padding:12px; border-bottom:1px solid #e5e7eb; font-size:14px; color:#111827;">{{.Symbol}}</td>
                    <td style="padding:12px; border-bottom:1px solid #e5e7eb; font-size:14px; color:#111827;">{{.Price}}</td>
                    <td style="padding:12px; border-bottom:1px solid #e5e7eb; font-size:14px; color:{{.Color}};" align="right">{{.Change}}</td>
                  </tr>{{end}}
                </table>
              </td>
            </tr>

            <tr>
              <td style="padding:8px 24px 16px;">
                <div style="font-size:16px; font-weight:600; color:#111827; margin-bottom:8px;">Today's Outlook</div>
                <div style="padding:16px; border:1px solid #e5e7eb; border-radius:8px; font-size:14px; color:#111827; line-height:1.6;">{{.Outlook}}</div>
              </td>
            </tr>

            <tr>
              <td align="center" style="padding:8px 24px 24px;">
                <a href="{{.CtaURL}}" style="display:inline-block; padding:12px 24px; background:#111827; color:#ffffff; border-radius:8px; font-size:14px; font-weight:600; text-decoration:none;">Open Your Watchlist</a>
              </td>
            </tr>

            <tr>
              <td style="padding:16px 24px 24px; border-top:1px solid #e5e7eb; font-size:12px; color:#6b7280;">
                You receive this briefing because email notifications are enabled on your profile.
                <a href="{{.ManagePrefsURL}}" style="color:#6b7280;">Manage preferences</a>
              </td>
            </tr>
          </table>
        </td>
      </tr>
    </table>
  </body>
</html>
`))
