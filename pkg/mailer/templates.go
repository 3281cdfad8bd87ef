package mailer

import "html/template"

var orderConfirmationTmpl = template.Must(template.New(TemplateOrderConfirmation).Parse(`
<h1>Grazie per il tuo ordine{{if .CustomerName}}, {{.CustomerName}}{{end}}!</h1>
<p>Il tuo ordine <strong>#{{.OrderNumber}}</strong> &egrave; stato confermato.</p>
<table>
  <tr><th align="left">Articolo</th><th align="left">Variante</th><th>Qt.</th><th align="right">Prezzo</th></tr>
  {{range .Items}}
  <tr>
    <td>{{.Name}}</td>
    <td>{{.Color}}{{if .Size}} / {{.Size}}{{end}}</td>
    <td align="center">{{.Quantity}}</td>
    <td align="right">&euro;{{.UnitPrice}}</td>
  </tr>
  {{end}}
</table>
<p>
  Subtotale: &euro;{{.Subtotal}}<br>
  {{if .Discount}}Sconto: -&euro;{{.Discount}}<br>{{end}}
  Spedizione: &euro;{{.Shipping}}<br>
  IVA: &euro;{{.Tax}}<br>
  <strong>Totale: &euro;{{.Total}}</strong>
</p>
<p>Ogni pezzo &egrave; fatto a mano nel nostro laboratorio di Milano.</p>
`))

var newsletterWelcomeTmpl = template.Must(template.New(TemplateNewsletterWelcome).Parse(`
<h1>Benvenuto{{if .Name}}, {{.Name}}{{end}}!</h1>
<p>Grazie per esserti iscritto alla newsletter di PCL Ceramic Lab.</p>
<p>Riceverai in anteprima i nuovi drop di ceramiche fatte a mano e le offerte riservate agli iscritti.</p>
`))
