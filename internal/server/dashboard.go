package server

// Minimal collaborator page over the JSON API: counts, a distribution bar,
// and the per-post table.
const dashboardHTML = `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Aura - Subreddit Sentiment</title>
<style>
body { font-family: sans-serif; max-width: 60rem; margin: 2rem auto; padding: 0 1rem; }
form { display: flex; gap: .5rem; margin-bottom: 1.5rem; }
.metrics { display: flex; gap: 2rem; margin-bottom: 1rem; }
.metric b { display: block; font-size: 1.6rem; }
.bar { display: flex; height: 1rem; border-radius: .5rem; overflow: hidden; margin-bottom: 1.5rem; }
.bar .positive { background: #28a745; }
.bar .neutral { background: #ffc107; }
.bar .negative { background: #dc3545; }
table { width: 100%; border-collapse: collapse; }
td, th { text-align: left; padding: .4rem; border-bottom: 1px solid #ddd; }
.error { color: #dc3545; }
</style>
</head>
<body>
<h1>Aura</h1>
<form id="form">
<input id="subreddit" placeholder="subreddit (e.g. apple)" value="apple">
<input id="limit" type="number" min="1" max="100" value="25">
<button type="submit">Analyze</button>
</form>
<div id="out"></div>
<script>
document.getElementById('form').addEventListener('submit', async (e) => {
  e.preventDefault();
  const out = document.getElementById('out');
  out.textContent = 'Analyzing...';
  const subreddit = document.getElementById('subreddit').value;
  const limit = document.getElementById('limit').value;
  const resp = await fetch('/api/analysis?subreddit=' + encodeURIComponent(subreddit) + '&limit=' + limit);
  const data = await resp.json();
  if (!resp.ok) { out.innerHTML = '<p class="error"></p>'; out.firstChild.textContent = data.error; return; }
  const total = Math.max(data.total, 1);
  let html = '<div class="metrics">' +
    '<div class="metric"><b>' + data.total + '</b>total</div>' +
    '<div class="metric"><b>' + data.counts.positive + '</b>positive</div>' +
    '<div class="metric"><b>' + data.counts.neutral + '</b>neutral</div>' +
    '<div class="metric"><b>' + data.counts.negative + '</b>negative</div></div>' +
    '<div class="bar">' +
    '<div class="positive" style="width:' + (100 * data.counts.positive / total) + '%"></div>' +
    '<div class="neutral" style="width:' + (100 * data.counts.neutral / total) + '%"></div>' +
    '<div class="negative" style="width:' + (100 * data.counts.negative / total) + '%"></div></div>' +
    '<table><tr><th>Title</th><th>Label</th><th>Score</th></tr>';
  for (const post of data.posts) {
    const row = document.createElement('tr');
    row.innerHTML = '<td></td><td></td><td></td>';
    row.children[0].textContent = post.title;
    row.children[1].textContent = post.label;
    row.children[2].textContent = post.sentiment_score.toFixed(3);
    html += row.outerHTML;
  }
  out.innerHTML = html + '</table>';
});
</script>
</body>
</html>`
