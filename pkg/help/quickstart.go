package help

const QuickstartYAML = `# breezy Quick Start

setup:
  chrome: |
    # page summaries read the active tab over the DevTools protocol
    google-chrome --remote-debugging-port=9222
  api_key: |
    breezy key set AIza...
    # or: export GEMINI_API_KEY=AIza...  (also read from .env)

commands:
  summarize_active_tab: |
    breezy page
  summarize_url: |
    breezy url "https://example.com/article"
  distilled_url: |
    breezy url --readability "https://example.com/article"
  extract_only: |
    breezy extract
    breezy extract --url "https://example.com/article" --format yaml
  key_management: |
    breezy key show
    breezy key clear

config_file: |
  # breezy --config breezy.yaml page
  model: gemini-1.5-flash
  proxy_url: https://api.allorigins.win
  browser_url: http://127.0.0.1:9222
  timeout: 60s
  format: text
  detect_language: true

content_rules:
  - "Text comes from p, h1-h6, li, article, section"
  - "Segments of 20 characters or fewer are dropped"
  - "Reading time assumes 200 words per minute"
  - "Content must be at least 50 characters to summarize"
  - "Content over 25000 characters is truncated"

error_behavior:
  - "Malformed URLs: rejected before fetching"
  - "Page extraction failures: reported, no summary requested"
  - "Exit codes: 0=success, 1=input or configuration error, 2=extraction or summary failure"
`
