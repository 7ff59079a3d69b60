package leaflet

import (
	"html/template"
	"io"
	"time"
)

// PageData feeds the map page template.
type PageData struct {
	Title      string
	State      State
	MarkersURL string
	RefreshURL string
	PollEvery  time.Duration
}

var pageTmpl = template.Must(template.New("map").Funcs(template.FuncMap{
	"millis": func(d time.Duration) int64 { return d.Milliseconds() },
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
   <meta charset="UTF-8"/>
   <title>{{ .Title }}</title>
   <link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css" />
   <script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
   <link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/bootstrap@5.3.3/dist/css/bootstrap.min.css" />
   <style>
      html, body { height: 100%; margin: 0; }
      #{{ .State.Container }} { height: 100%; }
      .custom-incident-icon, .custom-resource-icon, .user-location-icon { background: none; border: none; }
   </style>
</head>
<body>
   <div id="{{ .State.Container }}"></div>
   <script>
      const state = {{ .State }};
      const markersURL = {{ .MarkersURL }};
      const refreshURL = {{ .RefreshURL }};
      const pollEvery = {{ millis .PollEvery }};

      const map = L.map(state.container).setView([state.center.lat, state.center.lng], state.zoom);
      (state.tiles || []).forEach(function (t) {
         L.tileLayer(t.url, { attribution: t.attribution, maxZoom: t.maxZoom }).addTo(map);
      });

      let layers = [];
      function draw(view) {
         layers.forEach(function (l) { map.removeLayer(l); });
         layers = [];
         (view.markers || []).forEach(function (m) {
            const icon = L.divIcon({
               className: m.icon.className,
               html: m.icon.html,
               iconSize: m.icon.iconSize,
               iconAnchor: m.icon.iconAnchor,
               popupAnchor: m.icon.popupAnchor
            });
            const layer = L.marker([m.position.lat, m.position.lng], { icon: icon }).bindPopup(m.popup);
            layer.addTo(map);
            layers.push(layer);
         });
         if (view.bounds) {
            map.fitBounds([[view.bounds[0].lat, view.bounds[0].lng], [view.bounds[1].lat, view.bounds[1].lng]]);
         }
      }

      function load() {
         return fetch(markersURL)
            .then(function (r) { return r.json(); })
            .then(function (data) { draw(data.view); })
            .catch(function (err) { console.error('Error loading map markers:', err); });
      }

      (state.controls || []).forEach(function (c) {
         const ctl = L.control({ position: c.position });
         ctl.onAdd = function () {
            const div = L.DomUtil.create('div', 'map-' + c.name + '-control');
            div.innerHTML = c.html;
            return div;
         };
         ctl.addTo(map);
      });

      document.addEventListener('click', function (e) {
         if (e.target.closest('[data-map-refresh]')) {
            fetch(refreshURL, { method: 'POST' }).then(load);
         }
      });

      draw(state);
      setInterval(function () {
         if (!document.hidden) { load(); }
      }, pollEvery);
   </script>
</body>
</html>
`))

// RenderPage writes the Leaflet page for one map state.
func RenderPage(w io.Writer, data PageData) error {
	if data.Title == "" {
		data.Title = "Live Incident Map"
	}
	if data.PollEvery <= 0 {
		data.PollEvery = 30 * time.Second
	}
	return pageTmpl.Execute(w, data)
}
