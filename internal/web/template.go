package web

const pageTemplate = `<!DOCTYPE html>
<html lang="pt-BR">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>aMORA - Simulador Financeiro</title>
<style>
body{font-family:sans-serif;background:#111827;color:#fff;margin:0}
header{background:#1f2937;padding:1rem}
main{max-width:28rem;margin:2rem auto;padding:0 1rem}
.card{background:#1f2937;border:1px solid #374151;border-radius:1rem;padding:1.5rem}
label{display:block;color:#d1d5db;margin-top:1rem}
input{width:100%;box-sizing:border-box;padding:.6rem;background:#374151;border:1px solid #4b5563;color:#fff;border-radius:.4rem}
.error{color:#f87171;font-size:.85rem;margin:.3rem 0 0}
.alert{background:#7f1d1d;padding:.6rem;border-radius:.4rem}
button{margin-top:1.5rem;width:100%;padding:.7rem;border:0;border-radius:.4rem;background:#ec4899;color:#fff;cursor:pointer}
button:disabled{opacity:.5;cursor:not-allowed}
.row{display:flex;justify-content:space-between;background:#374151;padding:.7rem;border-radius:.5rem;margin-top:.7rem}
@media print{header,form,.actions{display:none}}
</style>
</head>
<body>
<header><strong>aMORA</strong> Simulador Financeiro</header>
<main>
{{if .Rows}}
<div class="card">
  <h2>Resultado da Simulação</h2>
  {{range .Rows}}<div class="row"><span>{{.Icon}} {{.Label}}</span><strong>{{.Value}}</strong></div>
  {{end}}
  <div class="actions">
    <form method="post" action="/form/reset"><button type="submit">Nova Simulação</button></form>
    <button type="button" onclick="window.print()">Imprimir Resultado</button>
    <a href="/form/print">Baixar PDF</a>
  </div>
</div>
{{else}}
<form class="card" id="simulacao" method="post" action="/form/submit">
  <h1>Simulador de Financiamento</h1>
  {{if .Alert}}<p class="alert" id="alert">{{.Alert}}</p>{{end}}
  <label for="valorImovel">Valor do imóvel (R$)</label>
  <input id="valorImovel" name="valorImovel" inputmode="numeric" placeholder="Valor do imóvel" value="{{.Display.PropertyValue}}" {{if .Loading}}disabled{{end}}>
  <label for="percentualEntrada">Percentual de entrada (%)</label>
  <input id="percentualEntrada" name="percentualEntrada" inputmode="numeric" placeholder="Entre 5% e 20%" value="{{.Display.DownPaymentPercent}}" {{if .Loading}}disabled{{end}}>
  <p class="error" id="erro-percentual">{{index .Errors "percentual"}}</p>
  <label for="anosContrato">Prazo do financiamento (anos)</label>
  <input id="anosContrato" name="anosContrato" inputmode="numeric" placeholder="Até 5 anos" value="{{.Display.ContractYears}}" {{if .Loading}}disabled{{end}}>
  <p class="error" id="erro-anos">{{index .Errors "anos"}}</p>
  <button type="submit" id="simular" {{if or (not .Valid) .Loading}}disabled{{end}}>{{if .Loading}}Calculando...{{else}}Simular Financiamento{{end}}</button>
</form>
{{end}}
</main>
<script>
(function(){
  var form = document.getElementById("simulacao");
  if (!form) return;
  var button = document.getElementById("simular");
  function apply(s){
    document.getElementById("valorImovel").value = s.display.valorImovel;
    document.getElementById("percentualEntrada").value = s.display.percentualEntrada;
    document.getElementById("anosContrato").value = s.display.anosContrato;
    document.getElementById("erro-percentual").textContent = (s.errors && s.errors.percentual) || "";
    document.getElementById("erro-anos").textContent = (s.errors && s.errors.anos) || "";
    button.disabled = !s.valid || s.loading;
  }
  // Field changes go out one at a time so the server sees them in typing
  // order; only the reply to the latest change is written back.
  var queue = Promise.resolve();
  var sent = 0;
  ["valorImovel","percentualEntrada","anosContrato"].forEach(function(id){
    document.getElementById(id).addEventListener("input", function(e){
      var n = ++sent;
      var value = e.target.value;
      queue = queue.then(function(){
        return fetch("/form/field", {method:"POST", headers:{"Content-Type":"application/json"},
          body: JSON.stringify({field:id, value:value})})
          .then(function(r){ return r.json(); })
          .then(function(s){ if (n === sent) apply(s); });
      }).catch(function(){});
    });
  });
  form.addEventListener("submit", function(e){
    e.preventDefault();
    button.disabled = true;
    button.textContent = "Calculando...";
    queue.then(function(){
      return fetch("/form/submit", {method:"POST", headers:{"Accept":"application/json"}});
    })
      .then(function(r){ return r.json(); })
      .then(function(s){
        if (s.alert) { alert(s.alert); }
        window.location.reload();
      });
  });
})();
</script>
</body>
</html>
`
