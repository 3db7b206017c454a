package site

const pageHead = `<!DOCTYPE html>
<html lang="{{.Locale}}">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css">
<style>
  * { box-sizing: border-box; }
  body { margin: 0; font-family: system-ui, sans-serif; color: #222; }
  header { display: flex; gap: 1rem; align-items: center; padding: .5rem 1rem; background: #2f3b2f; color: #fff; }
  header a { color: #dfe8d0; }
  header h1 { font-size: 1.1rem; margin: 0; flex: 1; }
  main { display: grid; grid-template-columns: 1fr 360px; height: calc(100vh - 44px); }
  #map { height: 100%; }
  aside { overflow-y: auto; padding: .75rem; border-left: 1px solid #ccc; }
  aside h2 { font-size: 1rem; margin: 1rem 0 .5rem; }
  #search { display: flex; gap: .25rem; }
  #search input { flex: 1; padding: .4rem; }
  table { width: 100%; border-collapse: collapse; font-size: .85rem; }
  td, th { padding: .25rem; border-bottom: 1px solid #eee; text-align: left; }
  tbody tr { cursor: pointer; }
  tbody tr:hover { background: #f1f5ea; }
  #panel .photos { display: flex; gap: .5rem; }
  #panel .photos img { width: 48%; cursor: zoom-in; border-radius: 4px; }
  #viewer { position: fixed; inset: 0; background: rgba(0,0,0,.9); display: none; align-items: center; justify-content: center; overflow: hidden; z-index: 2000; }
  #viewer.open { display: flex; }
  #viewer img { max-width: 90vw; max-height: 90vh; cursor: grab; user-select: none; }
  #viewer button { position: absolute; background: none; border: 0; color: #fff; font-size: 2rem; cursor: pointer; }
  #viewer .close { top: 1rem; right: 1.5rem; }
  #viewer .prev { left: 1rem; }
  #viewer .next { right: 1rem; }
  .muted { color: #777; }
  .marker-selected { filter: hue-rotate(140deg) saturate(2); }
</style>
</head>
<body>
<header>
  <h1>{{.Title}}</h1>
  <a href="/">Mapa</a>
  <a href="/about">O projekcie</a>
</header>
`

const indexTemplate = pageHead + `<main>
  <div id="map"></div>
  <aside>
    <form id="search">
      <input type="search" name="q" placeholder="Szukaj po imieniu lub nazwisku" autocomplete="off">
      <button type="button" id="reset">Wyczyść</button>
    </form>
    <p id="status" class="muted"></p>
    <table id="results" hidden>
      <thead><tr><th>Imię i nazwisko</th><th>Ur.</th><th>Zm.</th><th>Miejsce</th></tr></thead>
      <tbody></tbody>
    </table>
    <section id="panel" hidden></section>
    <h2>Zbliżające się rocznice</h2>
    <ul id="anniversaries" class="muted"></ul>
  </aside>
</main>
<div id="viewer">
  <button class="close" aria-label="Zamknij">&times;</button>
  <button class="prev" aria-label="Poprzednie">&#8249;</button>
  <img alt="">
  <button class="next" aria-label="Następne">&#8250;</button>
</div>
<script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
<script>
(function () {
  var markers = {};
  var map, ws, cfg, results = [];

  function el(tag, text) { var e = document.createElement(tag); if (text !== undefined) e.textContent = text; return e; }
  function send(msg) { if (ws && ws.readyState === 1) ws.send(JSON.stringify(msg)); }

  function showMarkers(keys) {
    var keep = keys ? new Set(keys) : null;
    Object.keys(markers).forEach(function (k) {
      var m = markers[k];
      if (!keep || keep.has(k)) m.addTo(map); else m.remove();
    });
  }

  function highlight(sel) {
    if (sel.previous && markers[sel.previous]) markers[sel.previous].getElement() && markers[sel.previous].getElement().classList.remove("marker-selected");
    if (sel.current && markers[sel.current]) markers[sel.current].getElement() && markers[sel.current].getElement().classList.add("marker-selected");
    if (!sel.current) document.getElementById("panel").hidden = true;
  }

  function renderPanel(p) {
    var panel = document.getElementById("panel");
    panel.innerHTML = "";
    p.persons.forEach(function (person) {
      panel.appendChild(el("h3", person.name));
      panel.appendChild(el("p", "Data urodzenia: " + person.birth));
      panel.appendChild(el("p", "Data śmierci: " + person.death));
    });
    panel.appendChild(el("p", "Kwatera: " + p.location.label));
    var photos = el("div"); photos.className = "photos";
    p.photos.forEach(function (src, i) {
      var img = el("img"); img.src = "/" + src; img.alt = "";
      img.onerror = function () { img.remove(); };
      img.onclick = function () { send({type: "viewer_open", index: i}); };
      photos.appendChild(img);
    });
    panel.appendChild(photos);
    var qr = el("a", "Kod QR do tablicy"); qr.href = "/api/records/" + encodeURIComponent(p.key) + "/qr.png"; qr.target = "_blank";
    panel.appendChild(qr);
    panel.hidden = false;
  }

  function renderResults(res) {
    results = res.matches;
    var table = document.getElementById("results");
    var body = table.querySelector("tbody");
    body.innerHTML = "";
    res.matches.forEach(function (row) {
      var tr = el("tr");
      [row.name, row.birth, row.death, row.location].forEach(function (v) { tr.appendChild(el("td", v)); });
      tr.onclick = function () {
        map.setView([row.lat, row.lng], cfg.map.focus_zoom);
        send({type: "select", key: row.key});
      };
      body.appendChild(tr);
    });
    table.hidden = res.query.trim() === "";
    showMarkers(res.query.trim() === "" ? null : res.keys);
  }

  function renderViewer(v) {
    var box = document.getElementById("viewer");
    box.classList.toggle("open", v.open);
    if (!v.open) return;
    var img = box.querySelector("img");
    if (img.getAttribute("src") !== "/" + v.photo) img.src = "/" + v.photo;
    img.style.transform = "translate(" + v.offset_x + "px," + v.offset_y + "px) scale(" + v.scale + ")";
    img.style.cursor = v.panning ? "grabbing" : "grab";
  }

  function connect() {
    var proto = location.protocol === "https:" ? "wss://" : "ws://";
    ws = new WebSocket(proto + location.host + "/ws/session");
    ws.onmessage = function (ev) {
      var msg = JSON.parse(ev.data);
      switch (msg.type) {
        case "panel": renderPanel(msg.panel); break;
        case "selection": highlight(msg.selection); break;
        case "results": renderResults(msg.results); break;
        case "viewer": renderViewer(msg.viewer); break;
        case "error": console.warn(msg.error); break;
      }
    };
    ws.onclose = function () { setTimeout(connect, 2000); };
    ws.onopen = function () {
      var grave = new URLSearchParams(location.search).get("grave");
      if (grave) send({type: "select", key: grave});
    };
  }

  function loadAnniversaries() {
    fetch("/api/anniversaries").then(function (r) { return r.json(); }).then(function (data) {
      var list = document.getElementById("anniversaries");
      list.innerHTML = "";
      if (!data.entries.length) { list.appendChild(el("li", "Brak rocznic w najbliższych dniach.")); return; }
      data.entries.forEach(function (e) {
        var li = el("li", e.name + " (" + e.date + ", " + e.label + ")");
        li.style.cursor = "pointer";
        li.onclick = function () { send({type: "select", key: e.key}); };
        list.appendChild(li);
      });
    });
  }

  function wireViewer() {
    var box = document.getElementById("viewer");
    var img = box.querySelector("img");
    box.querySelector(".close").onclick = function () { send({type: "viewer_close"}); };
    box.querySelector(".prev").onclick = function () { send({type: "viewer_prev"}); };
    box.querySelector(".next").onclick = function () { send({type: "viewer_next"}); };
    box.addEventListener("wheel", function (e) { e.preventDefault(); send({type: "viewer_wheel", delta: e.deltaY}); }, {passive: false});
    img.addEventListener("mousedown", function (e) { e.preventDefault(); send({type: "pan_start", x: e.clientX, y: e.clientY}); });
    window.addEventListener("mousemove", function (e) { if (box.classList.contains("open")) send({type: "pan_move", x: e.clientX, y: e.clientY}); });
    window.addEventListener("mouseup", function () { if (box.classList.contains("open")) send({type: "pan_end"}); });
    document.addEventListener("keydown", function (e) {
      if (!box.classList.contains("open")) return;
      if (e.key === "Escape") send({type: "viewer_close"});
      if (e.key === "ArrowLeft") send({type: "viewer_prev"});
      if (e.key === "ArrowRight") send({type: "viewer_next"});
    });
  }

  fetch("/api/config").then(function (r) { return r.json(); }).then(function (c) {
    cfg = c;
    map = L.map("map", {minZoom: c.map.min_zoom, maxZoom: c.map.max_zoom}).setView([c.map.center_lat, c.map.center_lng], c.map.zoom);
    L.tileLayer(c.map.tile_url, {maxZoom: c.map.max_zoom, maxNativeZoom: 19, attribution: c.map.attribution}).addTo(map);
    return fetch("/api/records");
  }).then(function (r) { return r.json(); }).then(function (list) {
    list.forEach(function (m) {
      markers[m.key] = L.marker([m.lat, m.lng]).addTo(map).on("click", function () { send({type: "select", key: m.key}); });
    });
    return fetch("/api/status");
  }).then(function (r) { return r.json(); }).then(function (st) {
    document.getElementById("status").textContent = st.message || (st.persons + " osób w " + st.records + " grobach");
  });

  var form = document.getElementById("search");
  form.q.addEventListener("input", function () { send({type: "search", query: form.q.value}); });
  form.addEventListener("submit", function (e) { e.preventDefault(); });
  document.getElementById("reset").onclick = function () {
    form.q.value = "";
    renderResults({query: "", matches: [], keys: []});
    send({type: "clear"});
  };

  wireViewer();
  connect();
  loadAnniversaries();
})();
</script>
</body>
</html>
`

const aboutTemplate = pageHead + `<main style="display:block;height:auto;max-width:760px;margin:0 auto;padding:1rem">
<article>
{{.Content}}
</article>
</main>
</body>
</html>
`
