package notify

const emailHTMLTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>Cumpleaños {{.Date}}</title>
  <style>
    body {
      margin: 0;
      padding: 24px;
      background-color: #f3f4f6;
      font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
      color: #111827;
      line-height: 1.5;
    }

    .container {
      max-width: 640px;
      margin: 0 auto;
      background: #ffffff;
      border-radius: 8px;
      border: 1px solid #e5e7eb;
      overflow: hidden;
    }

    .header {
      padding: 20px 24px;
      background: linear-gradient(135deg, #7c2d12 0%, #9a3412 100%);
      color: #ffffff;
    }

    .headline {
      font-size: 22px;
      font-weight: 700;
      margin-bottom: 4px;
    }

    .subtitle {
      font-size: 14px;
      opacity: 0.9;
    }

    .section {
      padding: 16px 24px;
      border-top: 1px solid #f3f4f6;
    }

    .section-title {
      font-size: 11px;
      font-weight: 700;
      color: #6b7280;
      text-transform: uppercase;
      letter-spacing: 0.1em;
      margin-bottom: 12px;
    }

    table.birthdays {
      width: 100%;
      border-collapse: collapse;
      font-size: 14px;
    }

    table.birthdays th {
      text-align: left;
      color: #6b7280;
      font-weight: 500;
      padding: 6px 8px 6px 0;
      border-bottom: 1px solid #e5e7eb;
    }

    table.birthdays td {
      padding: 8px 8px 8px 0;
      border-bottom: 1px solid #f3f4f6;
      vertical-align: top;
    }

    .greeting {
      font-size: 13px;
      color: #374151;
      font-style: italic;
    }

    .footer {
      padding: 16px 24px;
      font-size: 12px;
      color: #9ca3af;
      text-align: center;
      background: #f9fafb;
      border-top: 1px solid #f3f4f6;
    }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <div class="headline">🎂 {{.Count}} cumpleaños</div>
      <div class="subtitle">{{.Source}} · {{.Date}}</div>
    </div>

    <div class="section">
      <div class="section-title">Pacientes</div>
      <table class="birthdays">
        <tr><th>Nombre</th><th>Fecha</th><th>Edad</th><th>Celular</th></tr>
        {{range .Rows}}
        <tr>
          <td>
            {{.Name}}
            {{if .Greeting}}<div class="greeting">{{.Greeting}}</div>{{end}}
          </td>
          <td>{{.Birthday}}</td>
          <td>{{.Age}}</td>
          <td>{{.Phone}}</td>
        </tr>
        {{end}}
      </table>
    </div>

    <div class="footer">
      Run {{.RunID}} · delivered {{.Timestamp}}
    </div>
  </div>
</body>
</html>`
