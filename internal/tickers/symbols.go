package tickers

// builtinEntries is the built-in S&P-style symbol table. It is not a
// complete listing; it covers the large-cap names research users reach
// for first.
var builtinEntries = []Entry{
	{Symbol: "AAPL", Name: "Apple Inc.", Sector: "Technology", Exchange: "NASDAQ"},
	{Symbol: "MSFT", Name: "Microsoft Corporation", Sector: "Technology", Exchange: "NASDAQ"},
	{Symbol: "GOOGL", Name: "Alphabet Inc.", Sector: "Communication Services", Exchange: "NASDAQ"},
	{Symbol: "AMZN", Name: "Amazon.com Inc.", Sector: "Consumer Cyclical", Exchange: "NASDAQ"},
	{Symbol: "NVDA", Name: "NVIDIA Corporation", Sector: "Technology", Exchange: "NASDAQ"},
	{Symbol: "META", Name: "Meta Platforms Inc.", Sector: "Communication Services", Exchange: "NASDAQ"},
	{Symbol: "TSLA", Name: "Tesla Inc.", Sector: "Consumer Cyclical", Exchange: "NASDAQ"},
	{Symbol: "AVGO", Name: "Broadcom Inc.", Sector: "Technology", Exchange: "NASDAQ"},
	{Symbol: "JPM", Name: "JPMorgan Chase & Co.", Sector: "Financial Services", Exchange: "NYSE"},
	{Symbol: "V", Name: "Visa Inc.", Sector: "Financial Services", Exchange: "NYSE"},
	{Symbol: "MA", Name: "Mastercard Incorporated", Sector: "Financial Services", Exchange: "NYSE"},
	{Symbol: "BAC", Name: "Bank of America Corporation", Sector: "Financial Services", Exchange: "NYSE"},
	{Symbol: "WFC", Name: "Wells Fargo & Company", Sector: "Financial Services", Exchange: "NYSE"},
	{Symbol: "GS", Name: "The Goldman Sachs Group Inc.", Sector: "Financial Services", Exchange: "NYSE"},
	{Symbol: "MS", Name: "Morgan Stanley", Sector: "Financial Services", Exchange: "NYSE"},
	{Symbol: "AXP", Name: "American Express Company", Sector: "Financial Services", Exchange: "NYSE"},
	{Symbol: "BLK", Name: "BlackRock Inc.", Sector: "Financial Services", Exchange: "NYSE"},
	{Symbol: "JNJ", Name: "Johnson & Johnson", Sector: "Healthcare", Exchange: "NYSE"},
	{Symbol: "UNH", Name: "UnitedHealth Group Incorporated", Sector: "Healthcare", Exchange: "NYSE"},
	{Symbol: "LLY", Name: "Eli Lilly and Company", Sector: "Healthcare", Exchange: "NYSE"},
	{Symbol: "PFE", Name: "Pfizer Inc.", Sector: "Healthcare", Exchange: "NYSE"},
	{Symbol: "MRK", Name: "Merck & Co. Inc.", Sector: "Healthcare", Exchange: "NYSE"},
	{Symbol: "ABBV", Name: "AbbVie Inc.", Sector: "Healthcare", Exchange: "NYSE"},
	{Symbol: "TMO", Name: "Thermo Fisher Scientific Inc.", Sector: "Healthcare", Exchange: "NYSE"},
	{Symbol: "ABT", Name: "Abbott Laboratories", Sector: "Healthcare", Exchange: "NYSE"},
	{Symbol: "WMT", Name: "Walmart Inc.", Sector: "Consumer Defensive", Exchange: "NYSE"},
	{Symbol: "PG", Name: "The Procter & Gamble Company", Sector: "Consumer Defensive", Exchange: "NYSE"},
	{Symbol: "KO", Name: "The Coca-Cola Company", Sector: "Consumer Defensive", Exchange: "NYSE"},
	{Symbol: "PEP", Name: "PepsiCo Inc.", Sector: "Consumer Defensive", Exchange: "NASDAQ"},
	{Symbol: "COST", Name: "Costco Wholesale Corporation", Sector: "Consumer Defensive", Exchange: "NASDAQ"},
	{Symbol: "HD", Name: "The Home Depot Inc.", Sector: "Consumer Cyclical", Exchange: "NYSE"},
	{Symbol: "MCD", Name: "McDonald's Corporation", Sector: "Consumer Cyclical", Exchange: "NYSE"},
	{Symbol: "NKE", Name: "NIKE Inc.", Sector: "Consumer Cyclical", Exchange: "NYSE"},
	{Symbol: "SBUX", Name: "Starbucks Corporation", Sector: "Consumer Cyclical", Exchange: "NASDAQ"},
	{Symbol: "XOM", Name: "Exxon Mobil Corporation", Sector: "Energy", Exchange: "NYSE"},
	{Symbol: "CVX", Name: "Chevron Corporation", Sector: "Energy", Exchange: "NYSE"},
	{Symbol: "COP", Name: "ConocoPhillips", Sector: "Energy", Exchange: "NYSE"},
	{Symbol: "ORCL", Name: "Oracle Corporation", Sector: "Technology", Exchange: "NYSE"},
	{Symbol: "CRM", Name: "Salesforce Inc.", Sector: "Technology", Exchange: "NYSE"},
	{Symbol: "ADBE", Name: "Adobe Inc.", Sector: "Technology", Exchange: "NASDAQ"},
	{Symbol: "CSCO", Name: "Cisco Systems Inc.", Sector: "Technology", Exchange: "NASDAQ"},
	{Symbol: "INTC", Name: "Intel Corporation", Sector: "Technology", Exchange: "NASDAQ"},
	{Symbol: "AMD", Name: "Advanced Micro Devices Inc.", Sector: "Technology", Exchange: "NASDAQ"},
	{Symbol: "QCOM", Name: "QUALCOMM Incorporated", Sector: "Technology", Exchange: "NASDAQ"},
	{Symbol: "TXN", Name: "Texas Instruments Incorporated", Sector: "Technology", Exchange: "NASDAQ"},
	{Symbol: "IBM", Name: "International Business Machines Corporation", Sector: "Technology", Exchange: "NYSE"},
	{Symbol: "NFLX", Name: "Netflix Inc.", Sector: "Communication Services", Exchange: "NASDAQ"},
	{Symbol: "DIS", Name: "The Walt Disney Company", Sector: "Communication Services", Exchange: "NYSE"},
	{Symbol: "CMCSA", Name: "Comcast Corporation", Sector: "Communication Services", Exchange: "NASDAQ"},
	{Symbol: "T", Name: "AT&T Inc.", Sector: "Communication Services", Exchange: "NYSE"},
	{Symbol: "VZ", Name: "Verizon Communications Inc.", Sector: "Communication Services", Exchange: "NYSE"},
	{Symbol: "BA", Name: "The Boeing Company", Sector: "Industrials", Exchange: "NYSE"},
	{Symbol: "CAT", Name: "Caterpillar Inc.", Sector: "Industrials", Exchange: "NYSE"},
	{Symbol: "GE", Name: "GE Aerospace", Sector: "Industrials", Exchange: "NYSE"},
	{Symbol: "HON", Name: "Honeywell International Inc.", Sector: "Industrials", Exchange: "NASDAQ"},
	{Symbol: "LMT", Name: "Lockheed Martin Corporation", Sector: "Industrials", Exchange: "NYSE"},
	{Symbol: "UPS", Name: "United Parcel Service Inc.", Sector: "Industrials", Exchange: "NYSE"},
	{Symbol: "MMM", Name: "3M Company", Sector: "Industrials", Exchange: "NYSE"},
	{Symbol: "NEE", Name: "NextEra Energy Inc.", Sector: "Utilities", Exchange: "NYSE"},
	{Symbol: "LIN", Name: "Linde plc", Sector: "Basic Materials", Exchange: "NASDAQ"},
}
