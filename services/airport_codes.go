package services

// countryAirports maps country and territory names to the airport code used
// as the itinerary service's location key. Order matters: the
// case-insensitive fallback returns the first match.
var countryAirports = []struct {
	name string
	code string
}{
	{"United States", "JFK"},
	{"USA", "JFK"},
	{"US", "JFK"},
	{"United Kingdom", "LHR"},
	{"UK", "LHR"},
	{"UAE", "DXB"},
	{"United Arab Emirates", "DXB"},
	{"France", "CDG"},
	{"Germany", "FRA"},
	{"Italy", "FCO"},
	{"Spain", "MAD"},
	{"Japan", "NRT"},
	{"China", "PEK"},
	{"India", "DEL"},
	{"Australia", "SYD"},
	{"Canada", "YYZ"},
	{"Mexico", "MEX"},
	{"Brazil", "GRU"},
	{"Russia", "SVO"},
	{"South Korea", "ICN"},
	{"Singapore", "SIN"},
	{"Thailand", "BKK"},
	{"Vietnam", "HAN"},
	{"Indonesia", "CGK"},
	{"Malaysia", "KUL"},
	{"Philippines", "MNL"},
	{"New Zealand", "AKL"},
	{"South Africa", "JNB"},
	{"Egypt", "CAI"},
	{"Turkey", "IST"},
	{"Greece", "ATH"},
	{"Netherlands", "AMS"},
	{"Belgium", "BRU"},
	{"Switzerland", "ZRH"},
	{"Sweden", "ARN"},
	{"Norway", "OSL"},
	{"Denmark", "CPH"},
	{"Finland", "HEL"},
	{"Poland", "WAW"},
	{"Portugal", "LIS"},
	{"Ireland", "DUB"},
	{"Austria", "VIE"},
	{"Hungary", "BUD"},
	{"Czech Republic", "PRG"},
	{"Slovakia", "BTS"},
	{"Croatia", "ZAG"},
	{"Serbia", "BEG"},
	{"Romania", "OTP"},
	{"Bulgaria", "SOF"},
	{"Ukraine", "KBP"},
	{"Belarus", "MSQ"},
	{"Kazakhstan", "NQZ"},
	{"Uzbekistan", "TAS"},
	{"Pakistan", "ISB"},
	{"Bangladesh", "DAC"},
	{"Sri Lanka", "CMB"},
	{"Nepal", "KTM"},
	{"Maldives", "MLE"},
	{"Cambodia", "PNH"},
	{"Laos", "VTE"},
	{"Myanmar", "RGN"},
	{"Brunei", "BWN"},
	{"Timor-Leste", "DIL"},
	{"Papua New Guinea", "POM"},
	{"Fiji", "NAN"},
	{"Samoa", "APW"},
	{"Tonga", "TBU"},
	{"Vanuatu", "VLI"},
	{"Solomon Islands", "HIR"},
	{"Marshall Islands", "MAJ"},
	{"Micronesia", "PNI"},
	{"Palau", "ROR"},
	{"Nauru", "INU"},
	{"Kiribati", "TRW"},
	{"Tuvalu", "FUN"},
	{"Cook Islands", "RAR"},
	{"Niue", "IUE"},
	{"Tokelau", "NKL"},
	{"American Samoa", "PPG"},
	{"Guam", "GUM"},
	{"Northern Mariana Islands", "SPN"},
	{"Puerto Rico", "SJU"},
	{"U.S. Virgin Islands", "STT"},
	{"British Virgin Islands", "EIS"},
	{"Anguilla", "AXA"},
	{"Montserrat", "MNI"},
	{"Cayman Islands", "GCM"},
	{"Turks and Caicos Islands", "PLS"},
	{"Bermuda", "BDA"},
	{"Aruba", "AUA"},
	{"Curaçao", "CUR"},
	{"Sint Maarten", "SXM"},
	{"Bonaire", "BON"},
	{"Saba", "SAB"},
	{"Sint Eustatius", "EUX"},
	{"Saint Martin", "SFG"},
	{"Saint Barthélemy", "SBH"},
	{"Saint Pierre and Miquelon", "FSP"},
	{"Greenland", "GOH"},
	{"Faroe Islands", "FAE"},
	{"Åland Islands", "MHQ"},
	{"Isle of Man", "IOM"},
	{"Jersey", "JER"},
	{"Guernsey", "GCI"},
	{"Gibraltar", "GIB"},
	{"Malta", "MLA"},
	{"Cyprus", "LCA"},
	{"Iceland", "KEF"},
	{"Luxembourg", "LUX"},
	{"Liechtenstein", "ZRH"},
	{"Monaco", "MCM"},
	{"San Marino", "RMI"},
	{"Vatican City", "FCO"},
	{"Andorra", "LEU"},
	{"Moldova", "KIV"},
	{"Albania", "TIA"},
	{"North Macedonia", "SKP"},
	{"Kosovo", "PRN"},
	{"Montenegro", "TGD"},
	{"Bosnia and Herzegovina", "SJJ"},
	{"Slovenia", "LJU"},
	{"Estonia", "TLL"},
	{"Latvia", "RIX"},
	{"Lithuania", "VNO"},
	{"Armenia", "EVN"},
	{"Azerbaijan", "GYD"},
	{"Georgia", "TBS"},
	{"Kyrgyzstan", "FRU"},
	{"Tajikistan", "DYU"},
	{"Turkmenistan", "ASB"},
	{"Afghanistan", "KBL"},
	{"Iran", "IKA"},
	{"Iraq", "BGW"},
	{"Syria", "DAM"},
	{"Lebanon", "BEY"},
	{"Jordan", "AMM"},
	{"Israel", "TLV"},
	{"Palestine", "GZA"},
	{"Saudi Arabia", "RUH"},
	{"Yemen", "SAH"},
	{"Oman", "MCT"},
	{"Qatar", "DOH"},
	{"Bahrain", "BAH"},
	{"Kuwait", "KWI"},
	{"Morocco", "CMN"},
	{"Algeria", "ALG"},
	{"Tunisia", "TUN"},
	{"Libya", "TIP"},
	{"Sudan", "KRT"},
	{"South Sudan", "JUB"},
	{"Ethiopia", "ADD"},
	{"Eritrea", "ASM"},
	{"Djibouti", "JIB"},
	{"Somalia", "MGQ"},
	{"Kenya", "NBO"},
	{"Uganda", "EBB"},
	{"Rwanda", "KGL"},
	{"Burundi", "BJM"},
	{"Tanzania", "DAR"},
	{"Mozambique", "MPM"},
	{"Malawi", "LLW"},
	{"Zambia", "LUN"},
	{"Zimbabwe", "HRE"},
	{"Botswana", "GBE"},
	{"Namibia", "WDH"},
	{"Angola", "LAD"},
	{"Democratic Republic of the Congo", "FIH"},
	{"Republic of the Congo", "BZV"},
	{"Gabon", "LBV"},
	{"Equatorial Guinea", "SSG"},
	{"Cameroon", "NSI"},
	{"Nigeria", "LOS"},
	{"Niger", "NIM"},
	{"Chad", "NDJ"},
	{"Mali", "BKO"},
	{"Burkina Faso", "OUA"},
	{"Senegal", "DKR"},
	{"Gambia", "BJL"},
	{"Guinea-Bissau", "OXB"},
	{"Guinea", "CKY"},
	{"Sierra Leone", "FNA"},
	{"Liberia", "ROB"},
	{"Côte d'Ivoire", "ABJ"},
	{"Ghana", "ACC"},
	{"Togo", "LFW"},
	{"Benin", "COO"},
	{"Central African Republic", "BGF"},
	{"São Tomé and Príncipe", "TMS"},
	{"Cape Verde", "RAI"},
	{"Mauritania", "NKC"},
	{"Western Sahara", "VIL"},
	{"Comoros", "HAH"},
	{"Seychelles", "SEZ"},
	{"Mauritius", "MRU"},
	{"Madagascar", "TNR"},
	{"Réunion", "RUN"},
	{"Mayotte", "DZA"},
	{"French Guiana", "CAY"},
	{"French Polynesia", "PPT"},
	{"New Caledonia", "NOU"},
	{"Wallis and Futuna", "WLS"},
	{"French Southern Territories", "TLS"},
	{"Saint Helena", "HLE"},
	{"Ascension Island", "ASI"},
	{"Tristan da Cunha", "TDC"},
	{"Falkland Islands", "MPN"},
	{"South Georgia and the South Sandwich Islands", "GRY"},
	{"Antarctica", "NZWD"},
	{"Bouvet Island", "BVT"},
	{"Heard Island and McDonald Islands", "HIM"},
	{"Christmas Island", "XCH"},
	{"Cocos (Keeling) Islands", "CCK"},
	{"Norfolk Island", "NLK"},
	{"Pitcairn Islands", "PIT"},
	{"United States Minor Outlying Islands", "UMI"},
	{"Midway Islands", "MDY"},
	{"Wake Island", "AWK"},
	{"Johnston Atoll", "JON"},
	{"Baker Island", "BKN"},
	{"Howland Island", "HWL"},
	{"Jarvis Island", "JAR"},
	{"Kingman Reef", "KRM"},
	{"Palmyra Atoll", "PLY"},
	{"Navassa Island", "NVS"},
	{"Bajo Nuevo Bank", "BNB"},
	{"Serranilla Bank", "SRB"},
	{"Clipperton Island", "CPT"},
	{"Ashmore and Cartier Islands", "ACI"},
	{"Coral Sea Islands", "CSI"},
	{"Australian Antarctic Territory", "AAT"},
	{"Ross Dependency", "RDP"},
	{"Peter I Island", "PII"},
	{"Queen Maud Land", "QML"},
	{"British Indian Ocean Territory", "BIOT"},
	{"Akrotiri and Dhekelia", "AKT"},
	{"Svalbard and Jan Mayen", "SJM"},
	{"Jan Mayen", "JAN"},
	{"Svalbard", "SVA"},
	{"Macau", "MFM"},
	{"Hong Kong", "HKG"},
	{"Taiwan", "TPE"},
	{"Northern Cyprus", "ECN"},
	{"Abkhazia", "SUI"},
	{"South Ossetia", "TKV"},
	{"Nagorno-Karabakh", "LWN"},
	{"Transnistria", "TIR"},
	{"Somaliland", "HGA"},
	{"Sahrawi Arab Democratic Republic", "EUN"},
	{"Republic of Artsakh", "LWN"},
	{"Donetsk People's Republic", "DOK"},
	{"Luhansk People's Republic", "LUG"},
	{"Crimea", "SIP"},
	{"Northern Ireland", "BFS"},
	{"Scotland", "EDI"},
	{"Wales", "CWL"},
	{"England", "LHR"},
	{"Great Britain", "LHR"},
	{"British Isles", "LHR"},
	{"Channel Islands", "GCI"},
}
