package report

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/posidlab/pdfcompare/pkg/engine"
	"github.com/posidlab/pdfcompare/pkg/version"
)

// pagePoint feeds the per-page similarity chart.
type pagePoint struct {
	Page       int     `json:"page"`
	Similarity float64 `json:"similarity"`
	Edits      int     `json:"edits"`
}

// GenerateDashboard generates an interactive HTML dashboard.
func GenerateDashboard(res *engine.Result, path string) error {
	items := extractItems(res)
	counts := res.BlockCounts()

	points := make([]pagePoint, 0, len(res.PageResults))
	for _, pr := range res.PageResults {
		points = append(points, pagePoint{
			Page:       pr.Page + 1,
			Similarity: pr.Similarity,
			Edits:      len(pr.Edits),
		})
	}

	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return err
	}
	pagesJSON, err := json.Marshal(points)
	if err != nil {
		return err
	}

	html := `<!DOCTYPE html>
<html lang="ko">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>PDF Compare Report</title>
    <script src="https://cdn.jsdelivr.net/npm/chart.js"></script>
    <style>
        :root {
            --bg: #050505;
            --surface: rgba(255, 255, 255, 0.03);
            --surface-hover: rgba(255, 255, 255, 0.06);
            --border: rgba(255, 255, 255, 0.1);
            --primary: #00FF99;
            --warning: #FFCC33;
            --danger: #FF3366;
            --text: #F8FAFC;
            --text-dim: #94A3B8;
        }

        /* 1. Base styles. */
        * { box-sizing: border-box; }
        body {
            background: var(--bg);
            color: var(--text);
            font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", "Malgun Gothic", Roboto, sans-serif;
            margin: 0;
            padding: 40px;
            font-size: 14px;
        }

        /* 2. Header styles. */
        .header {
            display: flex;
            justify-content: space-between;
            align-items: center;
            margin-bottom: 40px;
            border-bottom: 1px solid var(--border);
            padding-bottom: 20px;
        }
        .logo { font-size: 1.5rem; font-weight: 700; letter-spacing: -1px; }
        .logo span { color: var(--primary); }
        .meta { color: var(--text-dim); font-family: monospace; }

        /* 3. KPI styles. */
        .kpi-grid {
            display: grid;
            grid-template-columns: repeat(4, 1fr);
            gap: 20px;
            margin-bottom: 40px;
        }
        .card {
            background: var(--surface);
            border: 1px solid var(--border);
            border-radius: 16px;
            padding: 24px;
            transition: transform 0.2s, background 0.2s;
        }
        .card:hover { background: var(--surface-hover); transform: translateY(-2px); }
        .card h3 { margin: 0 0 10px 0; font-size: 0.75rem; color: var(--text-dim); text-transform: uppercase; letter-spacing: 1.2px; }
        .card .value { font-size: 2.5rem; font-weight: 700; }
        .card .value.safe { color: var(--primary); }
        .card .value.warn { color: var(--warning); }
        .card .value.bad { color: var(--danger); }

        /* 4. Chart styles. */
        .analytics-grid {
            display: grid;
            grid-template-columns: 2fr 1fr;
            gap: 20px;
            margin-bottom: 40px;
        }
        .chart-container {
            background: var(--surface);
            border: 1px solid var(--border);
            border-radius: 16px;
            padding: 24px;
            position: relative;
            height: 350px;
            display: flex;
            flex-direction: column;
        }
        .chart-header {
            font-size: 0.85rem;
            font-weight: 600;
            margin-bottom: 16px;
        }
        .chart-body { flex: 1; position: relative; width: 100%; overflow: hidden; }

        /* 5. Data grid styles. */
        .table-wrapper {
            background: var(--surface);
            border: 1px solid var(--border);
            border-radius: 16px;
            overflow: hidden;
        }
        .toolbar {
            padding: 16px 24px;
            border-bottom: 1px solid var(--border);
        }
        .search-box {
            background: rgba(0,0,0,0.3);
            border: 1px solid var(--border);
            border-radius: 8px;
            padding: 8px 12px;
            color: var(--text);
            font-family: inherit;
            width: 300px;
            outline: none;
        }
        .search-box:focus { border-color: var(--primary); }
        .table-scroll { width: 100%; overflow-x: auto; }

        table { width: 100%; border-collapse: collapse; min-width: 900px; }
        th, td { padding: 14px 24px; text-align: left; border-bottom: 1px solid var(--border); }
        th {
            background: rgba(0,0,0,0.5);
            color: var(--text-dim);
            font-size: 0.75rem;
            text-transform: uppercase;
            font-weight: 600;
        }
        tr:last-child td { border-bottom: none; }
        tr:hover { background: rgba(255,255,255,0.02); }

        .badge { padding: 4px 10px; border-radius: 20px; font-size: 0.7rem; font-weight: 700; }
        .badge.deleted, .badge.delete { background: rgba(255, 51, 102, 0.15); color: var(--danger); }
        .badge.added, .badge.insert { background: rgba(0, 255, 153, 0.15); color: var(--primary); }
        .badge.modified, .badge.replace { background: rgba(255, 204, 51, 0.15); color: var(--warning); }

        footer { margin-top: 60px; color: var(--text-dim); font-size: 0.8rem; text-align: center; border-top: 1px solid var(--border); padding-top: 20px; }
    </style>
</head>
<body>

    <div class="header">
        <div class="logo">PDF<span>COMPARE</span></div>
        <div class="meta">Generated: {{GENERATED_TIME}}</div>
    </div>

    <!-- 1. KPI Cards section. -->
    <div class="kpi-grid">
        <div class="card">
            <h3>Similarity</h3>
            <div class="value {{SIMILARITY_CLASS}}">{{SIMILARITY}}%</div>
        </div>
        <div class="card">
            <h3>Word Changes</h3>
            <div class="value">{{EDIT_COUNT}}</div>
        </div>
        <div class="card">
            <h3>Block Changes</h3>
            <div class="value">{{BLOCK_COUNT}}</div>
        </div>
        <div class="card">
            <h3>Pages</h3>
            <div class="value">{{PAGES}}</div>
        </div>
    </div>

    <!-- 2. Charts section. -->
    <div class="analytics-grid">
        <div class="chart-container">
            <div class="chart-header">Similarity by Page</div>
            <div class="chart-body">
                <canvas id="barChart"></canvas>
            </div>
        </div>
        <div class="chart-container">
            <div class="chart-header">Change Breakdown</div>
            <div class="chart-body">
                <canvas id="pieChart"></canvas>
            </div>
        </div>
    </div>

    <!-- 3. Data Grid section. -->
    <div class="table-wrapper">
        <div class="toolbar">
            <input type="text" id="searchInput" class="search-box" placeholder="Filter differences..." onkeyup="filterTable()">
        </div>
        <div class="table-scroll">
            <table id="diffTable">
                <thead>
                    <tr>
                        <th>Page</th>
                        <th>Kind</th>
                        <th>Change</th>
                        <th>Left</th>
                        <th>Right</th>
                        <th>Detail</th>
                    </tr>
                </thead>
                <tbody id="table-body"></tbody>
            </table>
        </div>
    </div>

    <footer>
        Generated by pdfcompare ` + version.Current + ` | {{LEFT_PATH}} vs {{RIGHT_PATH}}
    </footer>

    <script>
        // --- DATA ---
        window.REPORT_DATA = {{REPORT_DATA}};
        window.PAGE_DATA = {{PAGE_DATA}};

        // --- 1. TABLE ---
        const tbody = document.getElementById('table-body');

        function cell(text) {
            const td = document.createElement('td');
            td.textContent = text;
            return td;
        }

        function renderTable(data) {
            tbody.innerHTML = '';
            data.forEach(item => {
                const tr = document.createElement('tr');
                tr.appendChild(cell(item.page + 1));
                tr.appendChild(cell(item.kind));

                const badge = document.createElement('td');
                const span = document.createElement('span');
                span.className = 'badge ' + item.change;
                span.textContent = item.change;
                badge.appendChild(span);
                tr.appendChild(badge);

                tr.appendChild(cell(item.left || ''));
                tr.appendChild(cell(item.right || ''));
                tr.appendChild(cell(item.detail || item.rules || ''));
                tbody.appendChild(tr);
            });
        }
        renderTable(window.REPORT_DATA);

        // --- 2. SEARCH ---
        function filterTable() {
            const filter = document.getElementById('searchInput').value.toUpperCase();
            const filtered = window.REPORT_DATA.filter(item =>
                Object.values(item).some(val => String(val).toUpperCase().includes(filter))
            );
            renderTable(filtered);
        }

        // --- 3. CHARTS ---
        const labels = window.PAGE_DATA.map(p => 'p.' + p.page);
        const simValues = window.PAGE_DATA.map(p => p.similarity);

        const ctxBar = document.getElementById('barChart').getContext('2d');
        new Chart(ctxBar, {
            type: 'bar',
            data: {
                labels: labels,
                datasets: [{
                    label: 'Similarity (%)',
                    data: simValues,
                    backgroundColor: simValues.map(v => v >= 90 ? 'rgba(0,255,153,0.5)' : (v >= 60 ? 'rgba(255,204,51,0.5)' : 'rgba(255,51,102,0.5)')),
                    borderWidth: 0,
                    borderRadius: 6
                }]
            },
            options: {
                responsive: true,
                maintainAspectRatio: false,
                plugins: { legend: { display: false } },
                scales: {
                    y: {
                        min: 0, max: 100,
                        grid: { color: 'rgba(255,255,255,0.03)' },
                        ticks: { color: '#64748B', font: { family: 'monospace' }, callback: (v) => v + '%' }
                    },
                    x: { grid: { display: false }, ticks: { color: '#94A3B8' } }
                }
            }
        });

        const ctxPie = document.getElementById('pieChart').getContext('2d');
        new Chart(ctxPie, {
            type: 'doughnut',
            data: {
                labels: ['Modified', 'Deleted', 'Added'],
                datasets: [{
                    data: [{{MODIFIED}}, {{DELETED}}, {{ADDED}}],
                    backgroundColor: ['#FFCC33', '#FF3366', '#00FF99'],
                    borderColor: ['#000', '#000', '#000'],
                    borderWidth: 2
                }]
            },
            options: {
                responsive: true,
                maintainAspectRatio: false,
                cutout: '70%',
                plugins: {
                    legend: { position: 'bottom', labels: { color: '#94A3B8', padding: 20, font: { size: 11 } } }
                }
            }
        });
    </script>
</body>
</html>`

	simClass := "safe"
	switch {
	case res.OverallSimilarity < 60:
		simClass = "bad"
	case res.OverallSimilarity < 90:
		simClass = "warn"
	}

	html = strings.ReplaceAll(html, "{{GENERATED_TIME}}", time.Now().Format("2006-01-02 15:04:05"))
	html = strings.ReplaceAll(html, "{{SIMILARITY}}", fmt.Sprintf("%.1f", res.OverallSimilarity))
	html = strings.ReplaceAll(html, "{{SIMILARITY_CLASS}}", simClass)
	html = strings.ReplaceAll(html, "{{EDIT_COUNT}}", fmt.Sprintf("%d", res.EditCount()))
	html = strings.ReplaceAll(html, "{{BLOCK_COUNT}}", fmt.Sprintf("%d", counts.Total))
	html = strings.ReplaceAll(html, "{{PAGES}}", fmt.Sprintf("%d", res.Pages))
	html = strings.ReplaceAll(html, "{{MODIFIED}}", fmt.Sprintf("%d", counts.Modified))
	html = strings.ReplaceAll(html, "{{DELETED}}", fmt.Sprintf("%d", counts.Deleted))
	html = strings.ReplaceAll(html, "{{ADDED}}", fmt.Sprintf("%d", counts.Added))
	html = strings.ReplaceAll(html, "{{LEFT_PATH}}", htmlEscape(res.LeftPath))
	html = strings.ReplaceAll(html, "{{RIGHT_PATH}}", htmlEscape(res.RightPath))
	html = strings.ReplaceAll(html, "{{REPORT_DATA}}", string(itemsJSON))
	html = strings.ReplaceAll(html, "{{PAGE_DATA}}", string(pagesJSON))

	return os.WriteFile(path, []byte(html), 0644)
}

func htmlEscape(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return r.Replace(s)
}
